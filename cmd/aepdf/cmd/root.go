package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/astroedu/astroedu/pkg/aedb"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/config"
	"github.com/astroedu/astroedu/pkg/media"
	"github.com/astroedu/astroedu/pkg/pdfbatch"
	"github.com/astroedu/astroedu/pkg/renderer"
	"github.com/spf13/cobra"
)

var (
	activityCode string
	activityLang string
	newOnly      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aepdf",
	Short: "Generate PDF artifacts for activity translations",
	Long: `Generates the downloadable PDF for activity translations through the
render service. Select translations with --code and --lang, or use --new to
generate only the PDFs that don't exist yet.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := pdfbatch.Options{Code: activityCode, Lang: activityLang, NewOnly: newOnly}
		if err := opts.Validate(); err != nil {
			log.Errorf("%s", err)
			os.Exit(1)
		}

		c := config.GetConfig()
		if err := c.Load(); err != nil {
			log.Infof("No dotenv file loaded: %s", err)
		}

		db := aedb.MustConnectToDB()
		stors := stor.NewGormStors(db)

		mediaStore := media.NewFSStore(c.MustGetKey("MEDIA_DIR"), c.GetKeyWithDefault("MEDIA_URL", "/media"))
		weasyClient := renderer.NewWeasyClient(c.MustGetKey("WEASYPRINT_URL"), c.MustGetKey("SITE_URL"))

		batch := pdfbatch.NewBatch(stors.ActivityTranslationStor, weasyClient, mediaStore)
		report, err := batch.Run(opts)
		if err != nil {
			log.Errorf("PDF generation failed: %s", err)
			os.Exit(1)
		}

		log.Infof("Generated %d, skipped %d, failed %d of %d selected translations",
			report.Generated, report.Skipped, report.Failed, report.Selected)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&activityCode, "code", "c", "", "Generate PDFs for this activity code only")
	rootCmd.Flags().StringVarP(&activityLang, "lang", "l", "", "Restrict generation to this language code")
	rootCmd.Flags().BoolVarP(&newOnly, "new", "n", false, "Generate only PDFs that don't exist yet")
}
