package cmd

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/astroedu/astroedu/pkg/aedb"
	"github.com/astroedu/astroedu/pkg/aedb/stor"
	"github.com/astroedu/astroedu/pkg/config"
	"github.com/astroedu/astroedu/pkg/media"
	"github.com/astroedu/astroedu/pkg/relimg"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aewebd",
	Short: "Run the astroEDU web server",
	Long:  `Serves the public astroEDU site API: activity listings, detail views, feeds, the sitemap, collections, smart pages and the markdown image uploader.`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.GetConfig()
		if err := c.Load(); err != nil {
			log.Infof("No dotenv file loaded: %s", err)
		}

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Debug = c.GetBoolKeyWithDefault("AEWEBD_DEBUG", false)
		e.Use(middleware.Recover())

		db := aedb.MustConnectToDB()
		if err := aedb.RunMigrations(db); err != nil {
			log.Fatalf("Unable to run migrations: %s", err)
		}

		stors := stor.NewGormStors(db)

		mediaDir := c.MustGetKey("MEDIA_DIR")
		siteURL := c.GetKeyWithDefault("SITE_URL", "http://localhost:1360")
		mediaStore := media.NewFSStore(mediaDir, c.GetKeyWithDefault("MEDIA_URL", siteURL+"/media"))
		log.Infof("Media Dir: %s", mediaDir)

		rewriter := relimg.NewRewriter(mediaStore,
			splitHosts(c.GetKey("TRUSTED_IMG_HOSTS")),
			[]string{siteURL + "/", "http://astroedu.iau.org/", "https://astroedu.iau.org/"})

		setupRoutes(e, RouteOpts{
			stors:      stors,
			mediaStore: mediaStore,
			rewriter:   rewriter,
			siteURL:    siteURL,
			maxUpload:  int64(c.GetIntKeyWithDefault("MAX_IMAGE_UPLOAD_SIZE", 0)),
		})

		if err := e.Start(":" + c.GetKeyWithDefault("AEWEBD_PORT", "1360")); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

func splitHosts(hosts string) []string {
	if hosts == "" {
		return nil
	}
	return strings.Split(hosts, ",")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
