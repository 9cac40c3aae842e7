package profile

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"
)

// Source is the subset of the netsh client the loader needs.
type Source interface {
	Profiles(ctx context.Context) ([]string, error)
	Password(ctx context.Context, name string) string
	Security(ctx context.Context, name string) string
}

// Deleter removes a single profile.
type Deleter interface {
	Delete(ctx context.Context, name string) error
}

// ProgressFunc is called after each profile is resolved.
type ProgressFunc func(done, total int, name string)

// Result is delivered once by Loader.Start.
type Result struct {
	Profiles []Profile
	Err      error
}

// Loader resolves the key and security type of every saved profile, one
// profile at a time.
type Loader struct {
	src      Source
	logger   log.Logger
	progress ProgressFunc
}

// Option configures a Loader.
type Option func(*Loader)

func WithLogger(l log.Logger) Option {
	return func(ld *Loader) { ld.logger = l }
}

func WithProgress(fn ProgressFunc) Option {
	return func(ld *Loader) { ld.progress = fn }
}

func NewLoader(src Source, opts ...Option) *Loader {
	ld := &Loader{src: src, logger: log.NewNopLogger()}
	for _, o := range opts {
		o(ld)
	}
	return ld
}

// Load lists the profiles and resolves each one in turn. Only a failure to
// list is returned; per-profile failures become placeholder values.
func (ld *Loader) Load(ctx context.Context) ([]Profile, error) {
	names, err := ld.src.Profiles(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return profiles, fmt.Errorf("loading stopped after %d of %d profiles: %w", i, len(names), err)
		}
		profiles = append(profiles, Profile{
			SSID:           name,
			Password:       ld.src.Password(ctx, name),
			Security:       ld.src.Security(ctx, name),
			ConnectionType: SavedProfile,
		})
		if ld.progress != nil {
			ld.progress(i+1, len(names), name)
		}
	}
	level.Info(ld.logger).Log("msg", "loaded profiles", "count", len(profiles))
	return profiles, nil
}

// Start runs Load on a background goroutine. The channel receives exactly one
// Result and is then closed.
func (ld *Loader) Start(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ps, err := ld.Load(ctx)
		ch <- Result{Profiles: ps, Err: err}
	}()
	return ch
}

// DeleteAll deletes every named profile. It keeps going after a failure and
// returns all failures together.
func DeleteAll(ctx context.Context, d Deleter, names []string) error {
	var result *multierror.Error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}
		if err := d.Delete(ctx, name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
