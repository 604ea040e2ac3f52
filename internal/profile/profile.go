// Package profile implements the participant surface: fetching the
// caller's registration profile and uploading the PDF documents.
//
// Upload validation here is advisory. It keeps obviously wrong files
// off the wire, but the backend re-validates and stays authoritative
// for acceptance.
package profile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/hackdesk/internal/api"
	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
	"github.com/felixgeelhaar/hackdesk/internal/log"
	"github.com/felixgeelhaar/hackdesk/internal/session"
)

// MaxUploadSize is the client-side PDF size cap (5 MiB)
const MaxUploadSize = 5 << 20

// pdfMagic is the signature every PDF starts with
var pdfMagic = []byte("%PDF-")

// ViewState classifies the profile fetch outcome
type ViewState int

const (
	// StateLoaded means the profile rendered with its fields
	StateLoaded ViewState = iota
	// StateUnregistered means authenticated but not yet registered
	// (HTTP 404), a dedicated empty state rather than an error
	StateUnregistered
	// StateError means any other failure; the user should retry
	StateError
)

// View is the renderable profile outcome. Missing scalar fields carry a
// placeholder dash.
type View struct {
	State       ViewState
	LeaderName  string
	CollegeName string
	TeamName    string
	Message     string
}

// Workflow drives the profile operations
type Workflow struct {
	client *api.Client
	store  *session.Store
	logger *log.Logger
}

// NewWorkflow creates a profile workflow
func NewWorkflow(client *api.Client, store *session.Store) *Workflow {
	return &Workflow{
		client: client,
		store:  store,
		logger: log.DefaultLogger().With("component", "profile"),
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Fetch retrieves the caller's registration profile. HTTP 404 is the
// expected "not yet registered" state, not an error.
func (w *Workflow) Fetch(ctx context.Context) View {
	w.client.SetToken(w.store.Token())

	p, err := w.client.Profile(ctx)
	if err != nil {
		if api.IsNotFound(err) {
			return View{State: StateUnregistered}
		}
		w.logger.WithError(err).Error("cannot load profile")
		return View{
			State:   StateError,
			Message: "Unable to load profile. Please retry.",
		}
	}

	return View{
		State:       StateLoaded,
		LeaderName:  orDash(p.LeaderName),
		CollegeName: orDash(p.CollegeName),
		TeamName:    orDash(p.TeamName),
	}
}

// ValidateFile gates an upload candidate: the file must exist, be a
// PDF (extension and %PDF- signature), and weigh at most 5 MiB. Each
// violation gets its own error kind so the message can be specific.
func ValidateFile(path string) error {
	if path == "" {
		return hderrors.New(hderrors.ErrCodeFileNotFound, "No file selected")
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return hderrors.New(hderrors.ErrCodeFileNotFound, "No such file: "+path)
	}

	if info.Size() > MaxUploadSize {
		return hderrors.New(hderrors.ErrCodeFileTooLarge, "File too large (max 5 MB)")
	}

	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return hderrors.New(hderrors.ErrCodeFileNotPDF, "Only PDF files are allowed")
	}

	f, err := os.Open(path)
	if err != nil {
		return hderrors.Wrap(hderrors.ErrCodeFileRead, "cannot open file", err)
	}
	defer f.Close()

	magic := make([]byte, len(pdfMagic))
	if _, err := f.Read(magic); err != nil || !bytes.Equal(magic, pdfMagic) {
		return hderrors.New(hderrors.ErrCodeFileNotPDF, "Only PDF files are allowed")
	}

	return nil
}

// Result is the structured outcome of an upload
type Result struct {
	Success bool
	Message string
}

// Upload validates and transmits a PDF document. Validation failures
// never reach the network.
func (w *Workflow) Upload(ctx context.Context, kind api.DocumentKind, path string) Result {
	if err := ValidateFile(path); err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{Success: false, Message: "Cannot read file: " + path}
	}
	defer f.Close()

	w.client.SetToken(w.store.Token())

	if err := w.client.UploadDocument(ctx, kind, filepath.Base(path), f); err != nil {
		w.logger.WithError(err).Error("upload failed", "kind", kind)
		if api.IsNetwork(err) {
			return Result{Success: false, Message: "Network error"}
		}
		return Result{Success: false, Message: api.Message(err, "Upload failed")}
	}

	w.logger.Info("document uploaded", "kind", kind, "file", filepath.Base(path))
	return Result{Success: true, Message: capitalize(string(kind)) + " uploaded successfully!"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
