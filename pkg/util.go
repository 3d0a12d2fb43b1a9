package pkg

import (
	"io"
	"os"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLog points the global logger at dest. Every line carries a session
// name so interleaved runs can be told apart. An empty dest disables
// logging. The returned closer releases the log file.
func InitLog(dest string, level string) (io.Closer, error) {
	if dest == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	log.Logger = NewLogger(f, lvl)
	return f, nil
}

func NewLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("session", petname.Generate(2, "-")).
		Logger()
}
