package storage

import (
	"fmt"
	"path/filepath"
	"time"
)

// DiskStorage reads the static datasets from a root folder.
type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := name
	if !filepath.IsAbs(name) {
		fileName = filepath.Join(ds.RootFolder, name)
	}
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}
