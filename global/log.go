package global

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Troublor/erebus-infoflow/config"
)

func setupLog() {
	writers, err := logWriters(viper.GetString(config.CLogFile.Key))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	zerolog.SetGlobalLevel(zerolog.Level(viper.GetUint(config.CLogLevel.Key)))
	builder := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if viper.GetBool(config.CLogLocation.Key) {
		builder = builder.Caller()
	}
	log.Logger = builder.Logger() // we use global logger
}

// logWriters opens every output in a "stdout;stderr;<path>" list. Files are
// appended to.
func logWriters(outputs string) ([]io.Writer, error) {
	writers := make([]io.Writer, 0)
	for _, out := range strings.Split(outputs, ";") {
		switch out = strings.TrimSpace(out); out {
		case "":
		case "stdout":
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
		case "stderr":
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
		default:
			f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				return nil, err
			}
			RegisterCleanupTask(func() { _ = f.Close() })
			writers = append(writers, zerolog.SyncWriter(f))
		}
	}
	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return writers, nil
}
