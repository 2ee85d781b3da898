package toi

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tess-atlas/slurm-utils/internal/common/atlaserrors"
)

const (
	// DefaultCatalogURL is the ExoFOP export listing every known TOI.
	DefaultCatalogURL = "https://tess-atlas.github.io/exofop_data/exofop_data.csv"
	// CatalogFileName is written to the output directory when TOIs are taken from the catalog.
	CatalogFileName = "tois.csv"

	csvColumn              = "toi_numbers"
	catalogTOIColumn       = "TOI int"
	catalogLightcurveAvail = "Lightcurve Available"
)

// Source describes where the requested TOIs come from.
// At most one of CSVPath and Number may be set; if neither is, the remote catalog is used.
type Source struct {
	CSVPath         string
	Number          *TargetID
	CatalogURL      string
	OutputDirectory string
	HTTPClient      *http.Client
	// Number of download attempts for the catalog.
	Attempts uint
	// Delay between download attempts.
	Delay time.Duration
}

// Load returns the requested TOIs.
func (s Source) Load(ctx context.Context, logger log.FieldLogger) (TargetSet, error) {
	switch {
	case s.CSVPath != "" && s.Number != nil:
		return TargetSet{}, errors.WithStack(&atlaserrors.ErrInvalidArgument{
			Name:    "toi-number",
			Value:   *s.Number,
			Message: "cannot be passed together with toi-csv",
		})
	case s.CSVPath != "":
		ids, err := ReadCSV(s.CSVPath)
		if err != nil {
			return TargetSet{}, err
		}
		return NewTargetSet(ids...), nil
	case s.Number != nil:
		return NewTargetSet(*s.Number), nil
	default:
		ids, err := s.fetchCatalog(ctx, logger)
		if err != nil {
			return TargetSet{}, err
		}
		return NewTargetSet(ids...), nil
	}
}

func (s Source) fetchCatalog(ctx context.Context, logger log.FieldLogger) ([]TargetID, error) {
	url := s.CatalogURL
	if url == "" {
		url = DefaultCatalogURL
	}
	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	attempts := s.Attempts
	if attempts == 0 {
		attempts = 1
	}

	var ids []TargetID
	err := retry.Do(
		func() error {
			var err error
			ids, err = FetchCatalog(ctx, client, url)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.Delay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.WithError(err).Warnf("download of %s failed (attempt %d)", url, n+1)
		}),
	)
	if err != nil {
		return nil, err
	}

	fileName := filepath.Join(s.OutputDirectory, CatalogFileName)
	if err := WriteCSV(fileName, ids); err != nil {
		return nil, err
	}
	logger.Infof("Saved %d TOIs with lightcurves to %s", len(ids), fileName)
	return ReadCSV(fileName)
}

// FetchCatalog downloads the TOI catalog from url and returns the TOIs that have a lightcurve available.
func FetchCatalog(ctx context.Context, client *http.Client, url string) ([]TargetID, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "error downloading %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("error downloading %s: %s", url, resp.Status)
	}
	return parseCatalog(resp.Body, url)
}

func parseCatalog(r io.Reader, source string) ([]TargetID, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "error reading csv from %s", source)
	}
	if len(records) == 0 {
		return nil, errors.WithStack(&atlaserrors.ErrNotFound{Type: "column", Value: catalogTOIColumn, Message: source + " is empty"})
	}
	toiCol, err := columnIndex(records[0], catalogTOIColumn, source)
	if err != nil {
		return nil, err
	}
	lkCol, err := columnIndex(records[0], catalogLightcurveAvail, source)
	if err != nil {
		return nil, err
	}

	ids := make([]TargetID, 0, len(records)-1)
	for _, row := range records[1:] {
		if !strings.EqualFold(strings.TrimSpace(row[lkCol]), "true") {
			continue
		}
		id, err := parseTargetID(row[toiCol], source)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return NewTargetSet(ids...).IDs(), nil
}

// ReadCSV reads TOI numbers from the toi_numbers column of the csv at path.
func ReadCSV(path string) ([]TargetID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "error reading csv %s", path)
	}
	if len(records) == 0 {
		return nil, errors.WithStack(&atlaserrors.ErrNotFound{Type: "column", Value: csvColumn, Message: path + " is empty"})
	}
	col, err := columnIndex(records[0], csvColumn, path)
	if err != nil {
		return nil, err
	}
	ids := make([]TargetID, 0, len(records)-1)
	for _, row := range records[1:] {
		id, err := parseTargetID(row[col], path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// WriteCSV writes ids to path as a single toi_numbers column.
func WriteCSV(path string, ids []TargetID) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{csvColumn}); err != nil {
		return errors.WithStack(err)
	}
	for _, id := range ids {
		if err := w.Write([]string{id.String()}); err != nil {
			return errors.WithStack(err)
		}
	}
	w.Flush()
	return errors.Wrapf(w.Error(), "error writing %s", path)
}

func columnIndex(header []string, column string, source string) (int, error) {
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			return i, nil
		}
	}
	return -1, errors.WithStack(&atlaserrors.ErrNotFound{Type: "column", Value: column, Message: "missing from " + source})
}

// parseTargetID accepts plain integers as well as integral floats such as "101.0".
func parseTargetID(s string, source string) (TargetID, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return TargetID(id), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errors.WithStack(&atlaserrors.ErrParse{Source: source, Value: s, Message: "not a TOI number"})
	}
	return TargetID(int(f)), nil
}
