package lists

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xERR0R/sigwatch/config"
)

type SourceOpener interface {
	fmt.Stringer

	Open(ctx context.Context) (io.ReadCloser, error)
}

func NewSourceOpener(source config.ZoneSource, downloader FileDownloader) (SourceOpener, error) {
	switch source.Type {
	case config.ZoneSourceTypeText:
		return &textOpener{source: source}, nil

	case config.ZoneSourceTypeHttp:
		return &httpOpener{source: source, downloader: downloader}, nil

	case config.ZoneSourceTypeFile:
		return &fileOpener{source: source}, nil
	}

	return nil, fmt.Errorf("cannot open %s", source)
}

type textOpener struct {
	source config.ZoneSource
}

func (o *textOpener) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(o.source.From)), nil
}

func (o *textOpener) String() string {
	return fmt.Sprintf("inline list: %s", o.source)
}

type httpOpener struct {
	source     config.ZoneSource
	downloader FileDownloader
}

func (o *httpOpener) Open(ctx context.Context) (io.ReadCloser, error) {
	return o.downloader.DownloadFile(ctx, o.source.From)
}

func (o *httpOpener) String() string {
	return o.source.String()
}

type fileOpener struct {
	source config.ZoneSource
}

func (o *fileOpener) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(o.source.From)
}

func (o *fileOpener) String() string {
	return o.source.String()
}
