package mock

import "github.com/fwojciec/itemfeed"

var _ itemfeed.BlockExtractor = (*BlockExtractor)(nil)

// BlockExtractor is a mock implementation of itemfeed.BlockExtractor.
type BlockExtractor struct {
	ExtractBlocksFn func(html string, baseURL string, desc *itemfeed.BlockDescriptor) ([]itemfeed.RawFieldBag, error)
	TitleFn         func(html string) string
}

func (e *BlockExtractor) ExtractBlocks(html string, baseURL string, desc *itemfeed.BlockDescriptor) ([]itemfeed.RawFieldBag, error) {
	return e.ExtractBlocksFn(html, baseURL, desc)
}

func (e *BlockExtractor) Title(html string) string {
	return e.TitleFn(html)
}

var _ itemfeed.PayloadSource = (*PayloadSource)(nil)

// PayloadSource is a mock implementation of itemfeed.PayloadSource.
type PayloadSource struct {
	RequestFn func(params itemfeed.Params) *itemfeed.PayloadRequest
	BagsFn    func(payload []byte) ([]itemfeed.RawFieldBag, error)
}

func (s *PayloadSource) Request(params itemfeed.Params) *itemfeed.PayloadRequest {
	return s.RequestFn(params)
}

func (s *PayloadSource) Bags(payload []byte) ([]itemfeed.RawFieldBag, error) {
	return s.BagsFn(payload)
}
