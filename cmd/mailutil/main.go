package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailutil/cmd/mailutil/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
