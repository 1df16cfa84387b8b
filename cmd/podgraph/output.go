package main

import "github.com/fatih/color"

// Status colours for command output.
var (
	Good   = color.New(color.FgGreen)
	Warn   = color.New(color.FgYellow)
	Bad    = color.New(color.FgRed, color.Bold)
	Subtle = color.New(color.FgHiBlack)
)
