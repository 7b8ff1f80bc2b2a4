package querybuilder

import "log/slog"

type BuilderConfigFunc func(builder *Builder)

// WithLogger logs every rendered statement at debug level.
func WithLogger(logger *slog.Logger) BuilderConfigFunc {
	return func(builder *Builder) {
		builder.logger = logger
	}
}
