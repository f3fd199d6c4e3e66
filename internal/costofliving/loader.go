package costofliving

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/col-retirement/pkg/constants"
)

// ErrNoSource is returned when neither a dataset path nor a URL is configured.
var ErrNoSource = errors.New("no dataset path or URL configured")

// Source describes where the dataset asset lives. URL takes precedence over
// Path when both are set.
type Source struct {
	Path    string
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

type assetRecord struct {
	All      *float64 `json:"rpp_all"`
	Housing  *float64 `json:"rpp_housing"`
	Goods    *float64 `json:"rpp_goods"`
	Other    *float64 `json:"rpp_other"`
	State    string   `json:"state"`
	CBSACode *string  `json:"cbsa_code"`
}

// LoadTable reads the whole dataset from src.
func LoadTable(ctx context.Context, src Source) (Table, error) {
	switch {
	case strings.TrimSpace(src.URL) != "":
		return fetchTable(ctx, src)
	case strings.TrimSpace(src.Path) != "":
		return readTableFile(src.Path)
	default:
		return nil, ErrNoSource
	}
}

func readTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeTable(f)
}

func fetchTable(ctx context.Context, src Source) (Table, error) {
	client := src.Client
	if client == nil {
		timeout := src.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultDatasetTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch dataset: unexpected status %d", resp.StatusCode)
	}
	return DecodeTable(resp.Body)
}

// DecodeTable parses the JSON asset into a Table. Keys are normalized; records
// with missing or non-positive indices are rejected so that every record the
// resolver hands out is complete.
func DecodeTable(r io.Reader) (Table, error) {
	var raw map[string]assetRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	table := make(Table, len(raw))
	for key, asset := range raw {
		code := NormalizePostalCode(key)
		if _, dup := table[code]; dup {
			return nil, fmt.Errorf("postal code %s appears more than once after normalization", code)
		}

		rec, err := asset.toRecord(code)
		if err != nil {
			return nil, fmt.Errorf("postal code %s: %w", code, err)
		}
		table[code] = rec
	}
	return table, nil
}

func (a assetRecord) toRecord(code string) (Record, error) {
	if a.All == nil || a.Housing == nil || a.Goods == nil || a.Other == nil {
		return Record{}, errors.New("incomplete price parity record")
	}
	if *a.All <= 0 || *a.Housing <= 0 || *a.Goods <= 0 || *a.Other <= 0 {
		return Record{}, errors.New("price parity indices must be positive")
	}

	region := strings.ToUpper(strings.TrimSpace(a.State))
	if region == "" {
		region, _ = RegionForPostalCode(code)
	}

	var metro *string
	if a.CBSACode != nil && strings.TrimSpace(*a.CBSACode) != "" {
		id := strings.TrimSpace(*a.CBSACode)
		metro = &id
	}

	return Record{
		AllItems:      *a.All,
		Housing:       *a.Housing,
		Goods:         *a.Goods,
		OtherServices: *a.Other,
		Region:        region,
		MetroAreaID:   metro,
	}, nil
}
