// Package termsheet coordinates the full pipeline from captured form
// values to a downloadable term sheet document: capture, validation,
// section visibility, template variant selection, document assembly,
// and serialization.
package termsheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dealdocs/termsheet/pkg/assemble"
	"github.com/dealdocs/termsheet/pkg/docx"
	"github.com/dealdocs/termsheet/pkg/field"
	"github.com/dealdocs/termsheet/pkg/snapshot"
	"github.com/dealdocs/termsheet/pkg/validate"
	"github.com/dealdocs/termsheet/pkg/variant"
	"github.com/dealdocs/termsheet/pkg/visibility"
)

// ErrGenerationInFlight is returned when Generate is called while a
// previous generation on the same Generator has not finished.
var ErrGenerationInFlight = errors.New("termsheet: generation already in progress")

// Serializer writes an assembled block sequence to w in the output
// byte format. The default serializer produces a .docx package.
type Serializer func(w io.Writer, blocks []assemble.Block) error

// Option customises the generator configuration.
type Option func(*Generator)

// WithRegistry injects a custom field registry. The default is the
// embedded share-sale registry.
func WithRegistry(reg *field.Registry) Option {
	return func(g *Generator) {
		g.reg = reg
	}
}

// WithController injects a custom visibility controller. The same
// controller instance gates both interactive prompts and document
// assembly, so a caller replacing one should replace both.
func WithController(ctrl *visibility.Controller) Option {
	return func(g *Generator) {
		g.ctrl = ctrl
	}
}

// WithSerializer overrides the output serializer.
func WithSerializer(s Serializer) Option {
	return func(g *Generator) {
		if s != nil {
			g.serialize = s
		}
	}
}

// WithClock overrides the time source used for output filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator runs the generation pipeline. A Generator is safe for
// concurrent use, but only one generation runs at a time; concurrent
// callers receive ErrGenerationInFlight rather than queueing.
type Generator struct {
	reg       *field.Registry
	ctrl      *visibility.Controller
	assembler *assemble.Assembler
	serialize Serializer
	now       func() time.Time

	initErr error
	busy    atomic.Bool
}

// New constructs a Generator applying any provided options. Missing
// dependencies fall back to the built-in registry, visibility catalog,
// section catalog, and docx serializer.
func New(options ...Option) *Generator {
	g := &Generator{
		serialize: docx.Write,
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.reg == nil {
		g.reg = field.Default()
	}
	if g.ctrl == nil {
		g.ctrl = visibility.Default()
	}
	g.assembler, g.initErr = assemble.New(g.reg)
	return g
}

// Registry returns the field registry the generator validates against.
func (g *Generator) Registry() *field.Registry {
	return g.reg
}

// Controller returns the visibility controller shared by prompting and
// assembly.
func (g *Generator) Controller() *visibility.Controller {
	return g.ctrl
}

// Artifact is the result of a successful generation.
type Artifact struct {
	// Filename is the suggested download name, derived from the target
	// company and the generation date.
	Filename string

	// Content is the complete serialized document.
	Content []byte

	// Warnings carries non-blocking validation findings, one message
	// per finding.
	Warnings []string

	// Variant names the selected template variant.
	Variant string
}

// ValidationError reports that generation was refused because the
// captured values failed validation. The document was not assembled.
type ValidationError struct {
	Result validate.Result
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors))
	for _, issue := range e.Result.Errors {
		msgs = append(msgs, issue.Message)
	}
	return "termsheet: validation failed: " + strings.Join(msgs, "; ")
}

// Generate captures a snapshot from src and runs it through the full
// pipeline. The snapshot is taken once up front; edits to src during
// generation do not affect the output. Validation errors abort before
// assembly and are returned as a *ValidationError.
func (g *Generator) Generate(ctx context.Context, src snapshot.Source) (*Artifact, error) {
	if ctx == nil {
		return nil, errors.New("termsheet: context is required")
	}
	if err := g.initErr; err != nil {
		return nil, err
	}
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.busy.Store(false)

	snap := snapshot.Capture(g.reg, src)
	return g.generate(ctx, snap)
}

// GenerateSnapshot runs the pipeline over an already captured
// snapshot, as when resuming a stored draft.
func (g *Generator) GenerateSnapshot(ctx context.Context, snap snapshot.Snapshot) (*Artifact, error) {
	if ctx == nil {
		return nil, errors.New("termsheet: context is required")
	}
	if err := g.initErr; err != nil {
		return nil, err
	}
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.busy.Store(false)

	return g.generate(ctx, snap.Clone())
}

func (g *Generator) generate(ctx context.Context, snap snapshot.Snapshot) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := validate.Validate(g.reg, snap)
	if !result.Valid() {
		return nil, &ValidationError{Result: result}
	}
	warnings := make([]string, 0, len(result.Warnings))
	for _, issue := range result.Warnings {
		warnings = append(warnings, issue.Message)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vis := g.ctrl.Evaluate(snap)
	sel := variant.Select(snap)

	blocks, err := g.assembler.Assemble(snap, vis, sel)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.serialize(&buf, blocks); err != nil {
		return nil, fmt.Errorf("termsheet: serialize: %w", err)
	}

	return &Artifact{
		Filename: assemble.Filename(snap, g.now()),
		Content:  buf.Bytes(),
		Warnings: warnings,
		Variant:  sel.Name(),
	}, nil
}

// Validate checks the current values in src without generating.
func (g *Generator) Validate(src snapshot.Source) validate.Result {
	snap := snapshot.Capture(g.reg, src)
	return validate.Validate(g.reg, snap)
}
