// cmd/seqstride-list/main.go
package main

import (
	"seqstride/internal/appshell"
	"seqstride/internal/listapp"
)

func main() { appshell.Main(listapp.RunContext) }
