package repository

import (
	"context"
	"errors"
	"fmt"
	"portfoliotracker/types"

	"github.com/jackc/pgx/v5"
)

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db Database) GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error) {
	asset, err := db.assets.AssetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, AssetNotFoundErr)
		}
		return nil, err
	}
	return &types.Asset{
		Id:        int(asset.ID),
		Ticker:    asset.Ticker,
		Name:      asset.Name,
		CreatedAt: asset.CreatedAt,
	}, nil
}
