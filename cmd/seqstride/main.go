// cmd/seqstride/main.go
package main

import (
	"seqstride/internal/app"
	"seqstride/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
