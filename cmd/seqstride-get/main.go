// cmd/seqstride-get/main.go
package main

import (
	"seqstride/internal/appshell"
	"seqstride/internal/getapp"
)

func main() { appshell.Main(getapp.RunContext) }
