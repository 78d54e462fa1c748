package ports

import "github.com/VihaanSom/karaoke-cli/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
}
