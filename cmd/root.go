package cmd

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"photo-portfolio/pkg/config"
	"photo-portfolio/pkg/metadata"
	"photo-portfolio/pkg/services"
)

// Configuration flags
var (
	configFile string
	photoRoot  string
	outputRoot string
	bucketName string
	portNumber string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photo-portfolio",
		Short: "Photo Portfolio builds a static photography site from a folder tree",
		Long: `Photo Portfolio is a command line application that turns a tree of photo folders into
a static site: one page per gallery, resized web copies, a navigation menu, a search index
and a recent photos page. It can also serve the result locally and publish it to
Google Cloud Storage.`,
		SilenceUsage: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Set the PORTFOLIO_CONFIG file (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&photoRoot, "photos", "", "Set the PHOTO_ROOT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&outputRoot, "output", "o", "", "Set the OUTPUT_ROOT (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	// Add commands to root
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newListGalleriesCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newShowNavCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newInjectNavCmd())
	rootCmd.AddCommand(newPublishCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	flags := map[string]string{
		"PORTFOLIO_CONFIG": configFile,
		"PHOTO_ROOT":       photoRoot,
		"OUTPUT_ROOT":      outputRoot,
		"BUCKET_NAME":      bucketName,
		"PORT":             portNumber,
	}
	for key, value := range flags {
		if value != "" {
			os.Setenv(key, value)
		}
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}

// newService loads the configuration and opens the metadata reader. The
// returned func releases the reader.
func newService() (*services.Service, func(), error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	meta, closeMeta := metadata.Open(cfg.ExiftoolPath)
	return services.NewService(cfg, meta), closeMeta, nil
}
