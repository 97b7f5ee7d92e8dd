package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/navsync/internal/config"
	"github.com/MrSnakeDoc/navsync/internal/models"
	"github.com/MrSnakeDoc/navsync/internal/service"
)

// Validate checks that the settings carry everything the selected backend
// needs. It never touches the network.
func Validate(st models.SyncSettings) error {
	switch st.BackendName() {
	case models.BackendWebDAV:
		if strings.TrimSpace(st.ServerURL) == "" {
			return errors.New("server url is empty")
		}
		if strings.TrimSpace(st.Username) == "" {
			return errors.New("username is empty")
		}
		if st.Password == "" {
			return errors.New("password is empty")
		}
	case models.BackendS3:
		if strings.TrimSpace(st.Bucket) == "" {
			return errors.New("bucket is empty")
		}
		if strings.TrimSpace(st.Username) == "" {
			return errors.New("access key (username) is empty")
		}
		if st.Password == "" {
			return errors.New("secret key (password) is empty")
		}
	case models.BackendDir:
		if strings.TrimSpace(st.ServerURL) == "" {
			return errors.New("directory (server url) is empty")
		}
	default:
		return fmt.Errorf("unknown backend %q", st.Backend)
	}
	return nil
}

// Open builds the backend selected by the settings.
func Open(ctx context.Context, st models.SyncSettings, rc config.RemoteConfig) (Backend, error) {
	if err := Validate(st); err != nil {
		return nil, err
	}
	switch st.BackendName() {
	case models.BackendS3:
		return NewS3(ctx, S3Config{
			Bucket:          st.Bucket,
			Region:          st.Region,
			Endpoint:        strings.TrimSpace(st.ServerURL),
			AccessKeyID:     st.Username,
			SecretAccessKey: st.Password,
			UsePathStyle:    st.ServerURL != "",
		})
	case models.BackendDir:
		return NewDir(strings.TrimSpace(st.ServerURL))
	default:
		return NewWebDAV(st.ServerURL, st.Username, st.Password, service.NewHTTPClient(rc.Timeout))
	}
}
