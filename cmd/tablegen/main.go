package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/example/tablegen/internal/cli"
	"github.com/example/tablegen/internal/config"
	"github.com/example/tablegen/internal/version"
	"github.com/example/tablegen/internal/wire"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "tablegen",
		Short:   "tablegen - CRUD source generator driven by table metadata",
		Version: version.String(),
		Long: `tablegen reads table and column definitions and generates the matching
C# entity, business class, request types and API controller, plus the Vue page
and API client for the frontend.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetConfigPath(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to tablegen.yaml")

	// klog registers log_file style names; accept log-file as well
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)
	defer klog.Flush()

	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.IndexCmd())
	rootCmd.AddCommand(cli.TemplatesCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		klog.Flush()
		os.Exit(1)
	}
}
