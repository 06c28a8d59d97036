package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cyuria/way2/way2gen/ir"
)

// MismatchPolicy selects what happens to a document whose root element
// is not <protocol>.
type MismatchPolicy string

const (
	MismatchSkip  MismatchPolicy = "skip"  // drop silently
	MismatchWarn  MismatchPolicy = "warn"  // drop with a warning
	MismatchError MismatchPolicy = "error" // fail the run
)

// XMLInputOptions configures BuildSet.
type XMLInputOptions struct {
	// Paths are the documents to load, in order.
	Paths []string

	// OnMismatch defaults to MismatchSkip.
	OnMismatch MismatchPolicy

	// SkipInterfaces are dropped from every document after the namespace
	// has been inferred.
	SkipInterfaces []string

	Logger *slog.Logger
}

// BuildSet parses every document and returns them as one read-only set.
func (p *XMLProvider) BuildSet(ctx context.Context, opts XMLInputOptions) (*ir.Set, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	policy := opts.OnMismatch
	if policy == "" {
		policy = MismatchSkip
	}

	set := ir.NewSet()
	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := p.ParseFile(path)
		if errors.Is(err, ErrNotProtocol) {
			switch policy {
			case MismatchError:
				return nil, err
			case MismatchWarn:
				w := ir.Warning{Code: string(ir.CodeNotProtocol), Message: fmt.Sprintf("%s: skipped, %v", path, ErrNotProtocol)}
				set.AddWarning(w)
				logger.WarnContext(ctx, "skipping document", slog.String("path", path), slog.String("reason", ErrNotProtocol.Error()))
			default:
				logger.DebugContext(ctx, "skipping document", slog.String("path", path))
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if doc.Namespace == "" {
			w := ir.Warning{Code: "missing_namespace", Message: fmt.Sprintf("protocol %q has no namespace", doc.Name)}
			set.AddWarning(w)
			logger.WarnContext(ctx, "protocol has no namespace", slog.String("protocol", doc.Name), slog.String("path", path))
		}

		if doc.Namespace != "" {
			prefix := doc.Namespace + "_"
			for _, iface := range doc.Interfaces {
				if strings.HasPrefix(iface.Name, prefix) {
					continue
				}
				w := ir.Warning{
					Code:    string(ir.CodeNamespaceMismatch),
					Message: fmt.Sprintf("protocol %q: interface %q does not start with %q", doc.Name, iface.Name, prefix),
				}
				set.AddWarning(w)
				logger.WarnContext(ctx, "interface outside namespace",
					slog.String("protocol", doc.Name),
					slog.String("interface", iface.Name),
					slog.String("namespace", doc.Namespace),
				)
			}
		}

		if len(opts.SkipInterfaces) > 0 {
			doc.Interfaces = slices.DeleteFunc(doc.Interfaces, func(iface *ir.Interface) bool {
				return slices.Contains(opts.SkipInterfaces, iface.Name)
			})
		}

		logger.DebugContext(ctx, "loaded document",
			slog.String("protocol", doc.Name),
			slog.String("namespace", doc.Namespace),
			slog.Int("interfaces", len(doc.Interfaces)),
		)
		set.Add(doc)
	}

	return set, nil
}
