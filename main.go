package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	// Время в логах и в записях - по Индии
	indiaLocation, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		indiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
	time.Local = indiaLocation

	rootCmd := &cobra.Command{
		Use:     "sova",
		Short:   "Sova gloves crowdfunding campaign server",
		Version: Version,
	}
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(adminTokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
