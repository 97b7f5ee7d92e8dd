package internal

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/errs"
	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/middleware"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/remote"
	"github.com/MrSnakeDoc/navsync/internal/utils"

	"github.com/spf13/cobra"
)

type settingsFlags struct {
	enable   bool
	disable  bool
	backend  string
	url      string
	username string
	password string
	bucket   string
	region   string
	interval int
}

func NewSettingsCmd() *cobra.Command {
	var f settingsFlags

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the sync settings",
		Long: `Show or change the sync settings.
Without flags the current settings are printed. Only the flags given are
changed; the last check, last success and last status fields are owned by
the sync itself and cannot be edited here.`,
		Example: `navsync settings
navsync settings --enable --url https://dav.example.com/navsync --username me --password secret
navsync settings --backend s3 --bucket my-bucket --region eu-west-1 --username KEY --password SECRET
navsync settings --interval 15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := storeFrom(cmd)
			if err != nil {
				return err
			}
			if err := f.validate(cmd); err != nil {
				return err
			}

			if !f.anyChanged(cmd) {
				current, err := st.LoadSettings(cmd.Context())
				if err != nil {
					return err
				}
				printSettings(current)
				return nil
			}

			var updated models.SyncSettings
			err = st.UpdateSettings(cmd.Context(), func(s *models.SyncSettings) error {
				if err := f.apply(cmd, s); err != nil {
					return err
				}
				updated = *s
				return nil
			})
			if err != nil {
				return err
			}

			logger.Success("Settings saved")
			if updated.Enabled {
				if err := remote.Validate(updated); err != nil {
					logger.Warn("Background sync is enabled but incomplete: %v", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&f.enable, "enable", false, "Turn background sync on")
	cmd.Flags().BoolVar(&f.disable, "disable", false, "Turn background sync off")
	cmd.Flags().StringVar(&f.backend, "backend", "", "Remote backend: webdav, s3 or dir")
	cmd.Flags().StringVar(&f.url, "url", "", "WebDAV folder URL, S3 endpoint or shared directory")
	cmd.Flags().StringVar(&f.username, "username", "", "WebDAV user or S3 access key")
	cmd.Flags().StringVar(&f.password, "password", "", "WebDAV password or S3 secret key")
	cmd.Flags().StringVar(&f.bucket, "bucket", "", "S3 bucket")
	cmd.Flags().StringVar(&f.region, "region", "", "S3 region")
	cmd.Flags().IntVar(&f.interval, "interval", 0, "Background check interval in minutes")

	return cmd
}

var settingsFlagNames = []string{
	"enable", "disable", "backend", "url", "username", "password", "bucket", "region", "interval",
}

func (f *settingsFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range settingsFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *settingsFlags) validate(cmd *cobra.Command) error {
	if f.enable && f.disable {
		return middleware.FlagComboError(errs.EnableWithDisable)
	}
	if cmd.Flags().Changed("interval") && f.interval < 1 {
		return middleware.FlagComboError(errs.IntervalTooSmall, f.interval)
	}
	if cmd.Flags().Changed("backend") {
		f.backend = strings.ToLower(strings.TrimSpace(f.backend))
		switch f.backend {
		case models.BackendWebDAV, models.BackendS3, models.BackendDir:
		default:
			return middleware.FlagComboError(errs.UnknownBackend, f.backend)
		}
	}
	return nil
}

// apply runs inside the settings transaction so the backend check sees the
// persisted value when --backend is not given.
func (f *settingsFlags) apply(cmd *cobra.Command, s *models.SyncSettings) error {
	flags := cmd.Flags()

	if flags.Changed("backend") {
		s.Backend = f.backend
	}
	if (flags.Changed("bucket") || flags.Changed("region")) && s.BackendName() != models.BackendS3 {
		return middleware.FlagComboError(errs.RegionWithoutS3, s.BackendName())
	}

	switch {
	case f.enable:
		s.Enabled = true
	case f.disable:
		s.Enabled = false
	}
	if flags.Changed("url") {
		s.ServerURL = strings.TrimSpace(f.url)
	}
	if flags.Changed("username") {
		s.Username = f.username
	}
	if flags.Changed("password") {
		s.Password = f.password
	}
	if flags.Changed("bucket") {
		s.Bucket = strings.TrimSpace(f.bucket)
	}
	if flags.Changed("region") {
		s.Region = strings.TrimSpace(f.region)
	}
	if flags.Changed("interval") {
		s.Interval = f.interval
	}
	return nil
}

func printSettings(s models.SyncSettings) {
	password := "-"
	if s.Password != "" {
		password = "(set)"
	}
	fields := []utils.Field{
		{Name: "Enabled", Value: fmt.Sprintf("%t", s.Enabled)},
		{Name: "Backend", Value: s.BackendName()},
		{Name: "URL", Value: orDash(s.ServerURL)},
		{Name: "Username", Value: orDash(s.Username)},
		{Name: "Password", Value: password},
	}
	if s.BackendName() == models.BackendS3 {
		fields = append(fields,
			utils.Field{Name: "Bucket", Value: orDash(s.Bucket)},
			utils.Field{Name: "Region", Value: orDash(s.Region)},
		)
	}
	fields = append(fields, utils.Field{Name: "Interval", Value: fmt.Sprintf("%d min", s.Interval)})
	utils.CreateFieldTable("Sync settings", fields)
}
