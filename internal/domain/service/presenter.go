package service

import "context"

// Presenter is the external presentation channel that renders a notification
// to the user. The deep link targets the region id so the presentation layer
// can route back into history filtered by region.
type Presenter interface {
	Present(ctx context.Context, title, message, deepLink string) error
}
