package stderr

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// forward logs every non-empty line read from r until it is closed.
func forward(r io.Reader, logger *zap.Logger) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			logger.Warn("audio backend", zap.String("line", line))
		}
	}
}
