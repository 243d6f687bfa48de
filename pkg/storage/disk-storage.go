package storage

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shreeji-electro/catalog-finder/pkg/common/jsoncompat"
	"github.com/shreeji-electro/catalog-finder/pkg/types"
	"golang.org/x/sync/errgroup"
)

const TaxonomyFile = "taxonomy.json"

var ErrNotFound = errors.New("file not found")

// LoadDataset reads one JSON array of raw records. Files ending in .gz are
// decompressed first.
func (d *DiskStorage) LoadDataset(file string) ([]types.RawRecord, error) {
	records := make([]types.RawRecord, 0)
	var err error
	if strings.HasSuffix(file, ".gz") {
		err = d.LoadGzippedJson(&records, file)
	} else {
		err = d.LoadJson(&records, file)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", file, err)
	}
	return records, nil
}

// LoadSources loads every source concurrently. Results keep the order of
// sources and the first failure cancels the rest.
func (d *DiskStorage) LoadSources(ctx context.Context, sources []types.DatasetSource) ([][]types.RawRecord, error) {
	ret := make([][]types.RawRecord, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := d.LoadDataset(src.File)
			if err != nil {
				return err
			}
			log.Info().Str("file", src.File).Str("family", string(src.Family)).Int("records", len(records)).Msg("loaded dataset")
			ret[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (p *DiskStorage) open(filename string) (*os.File, error) {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return file, err
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	file, err := p.open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	file, err := p.open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := p.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	err = jsoncompat.NewEncoder(file).Encode(data)
	file.Close()
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	zipWriter := gzip.NewWriter(file)
	err = jsoncompat.NewEncoder(zipWriter).Encode(data)
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	file.Close()
	if err != nil {
		os.Remove(tmpFileName)
		return err
	}
	return os.Rename(tmpFileName, fileName)
}
