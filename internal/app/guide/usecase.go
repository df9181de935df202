package guide

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/farm"
)

// CropsPage is rendered from the live catalog instead of read from the provider.
const CropsPage = "crops.md"

type UseCase struct {
	Provider ports.GuideProvider
	Catalog  farm.Catalog
}

func (u UseCase) Index(ctx context.Context) ([]byte, error) {
	b, err := u.Provider.Index(ctx)
	return b, notFound(err)
}

func (u UseCase) File(ctx context.Context, path string) ([]byte, error) {
	if path == CropsPage && u.Catalog.Len() > 0 {
		return renderCrops(u.Catalog), nil
	}
	b, err := u.Provider.File(ctx, path)
	return b, notFound(err)
}

func notFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ports.ErrNotFound, err)
	}
	return err
}

func renderCrops(c farm.Catalog) []byte {
	var b strings.Builder
	b.WriteString("# Crops\n\n")
	b.WriteString("| Species | Seed | Harvest | Grows in | Stages | Withers after |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, s := range c.All() {
		wither := "never"
		if s.WitherDuration > 0 {
			wither = s.WitherDuration.Round(time.Second).String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
			s.Name, s.SeedItem, s.HarvestItem, s.GrowthDuration.Round(time.Second), s.StageCount, wither)
	}
	return []byte(b.String())
}
