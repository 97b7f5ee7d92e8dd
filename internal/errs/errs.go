package errs

import "fmt"

type Code string

const (
	EnableWithDisable Code = "ENABLE_WITH_DISABLE"
	IntervalTooSmall  Code = "INTERVAL_TOO_SMALL"
	UnknownBackend    Code = "UNKNOWN_BACKEND"
	RegionWithoutS3   Code = "REGION_WITHOUT_S3"
)

var messages = map[Code]string{
	EnableWithDisable: `Invalid flag combination: cannot use --enable with --disable

Usage:
  - Turn background sync on:
      navsync settings --enable
  - Turn it off (manual "navsync sync" keeps working):
      navsync settings --disable`,

	IntervalTooSmall: `Invalid interval: %[1]d

Usage:
  navsync settings --interval 30

Reason:
  --interval is in minutes and must be at least 1.`,

	UnknownBackend: `Unknown backend: %[1]q

Usage:
  navsync settings --backend webdav --url https://dav.example.com/navsync --username me --password ...
  navsync settings --backend s3 --bucket my-bucket --region eu-west-1 --username KEY --password SECRET
  navsync settings --backend dir --url /mnt/share/navsync`,

	RegionWithoutS3: `Invalid flag combination: --bucket and --region require --backend s3

Usage:
  navsync settings --backend s3 --bucket my-bucket --region eu-west-1

Reason:
  the current backend is %[1]q, which has no bucket or region.`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
