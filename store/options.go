package store

import (
	"go.uber.org/zap"

	"github.com/arloliu/ncgrid/compress"
	"github.com/arloliu/ncgrid/format"
	"github.com/arloliu/ncgrid/internal/options"
)

// settings holds the options shared by Open and Create.
type settings struct {
	logger      *zap.Logger
	compression format.CompressionType
	explicit    bool
}

// Option configures Open, OpenReaderAt and Definer.Create.
type Option = options.Option[*settings]

func defaultSettings() *settings {
	return &settings{
		logger:      zap.NewNop(),
		compression: format.CompressionNone,
	}
}

// WithLogger sets the logger. A nil logger selects zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(s *settings) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
	})
}

// WithCompression sets the whole-file compression instead of inferring it from
// the path extension.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(s *settings) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		s.compression = ct
		s.explicit = true

		return nil
	})
}

// compressionFor returns the explicit compression, or the one implied by path.
func (s *settings) compressionFor(path string) format.CompressionType {
	if s.explicit {
		return s.compression
	}

	return compress.DetectFromPath(path)
}
