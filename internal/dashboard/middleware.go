package dashboard

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdMiddleware compresses response bodies with zstd when the client offers
// it via Accept-Encoding. Routes in skipRoutes pass through untouched so the
// HTML page stays readable in any browser.
func ZstdMiddleware(skipRoutes []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, route := range skipRoutes {
			if path == route {
				return c.Next()
			}
		}

		if err := c.Next(); err != nil {
			return err
		}

		acceptEncoding := c.Get(fiber.HeaderAcceptEncoding)
		if !strings.Contains(strings.ToLower(acceptEncoding), "zstd") {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			log.Err(err).Msg("failed to create zstd encoder")
			return nil // serve uncompressed
		}
		defer encoder.Close()

		compressed := encoder.EncodeAll(body, nil)
		c.Response().SetBody(compressed)
		c.Set(fiber.HeaderContentEncoding, "zstd")
		c.Set(fiber.HeaderContentLength, fmt.Sprintf("%d", len(compressed)))

		return nil
	}
}
