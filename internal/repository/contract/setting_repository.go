package contract

import "context"

type SettingRepository interface {
	// Get returns the stored value, or ("", false, nil) when the key has
	// never been written.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
