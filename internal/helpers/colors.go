package helpers

import "github.com/fatih/color"

var (
	Cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	Red    = color.New(color.FgRed, color.Bold).SprintFunc()
	Yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
)
