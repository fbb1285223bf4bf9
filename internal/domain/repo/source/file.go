package source

import (
	"context"
	"os"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) FileSource {
	return FileSource{
		path: path,
	}
}

func (s FileSource) LoadEvents(ctx context.Context) ([]entity.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, repo.NewIngestionError(err, "failed to open %s", s.path)
	}
	defer f.Close()

	ret, err := Decode(f)
	if err != nil {
		return nil, repo.NewIngestionError(err, "failed to read %s", s.path)
	}

	return ret, nil
}
