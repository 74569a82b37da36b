package workspace

import (
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/symbols"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// Searcher runs symbol queries over every file the walker finds. Files are
// opened fresh for each query and nothing is kept between queries.
type Searcher struct {
	walker          *Walker
	builder         *symbols.Builder
	streamThreshold int64
	chunkSize       int
}

// NewSearcher creates a searcher. Files larger than streamThreshold bytes are
// streamed in chunkSize pieces instead of being read whole.
func NewSearcher(w *Walker, b *symbols.Builder, streamThreshold int64, chunkSize int) *Searcher {
	return &Searcher{
		walker:          w,
		builder:         b,
		streamThreshold: streamThreshold,
		chunkSize:       chunkSize,
	}
}

// Walker returns the walker used for enumeration
func (s *Searcher) Walker() *Walker {
	return s.walker
}

func (s *Searcher) open(path string) (source.Source, error) {
	return source.Open(path, s.streamThreshold, s.chunkSize)
}

// Completions adds candidates from every script, then every variable file
func (s *Searcher) Completions(keyword, exclude string, set *symbols.CompletionSet) error {
	files, err := s.walker.Walk(exclude)
	if err != nil {
		return err
	}
	for _, path := range files.Scripts {
		src, err := s.open(path)
		if err != nil {
			return err
		}
		if err := s.builder.Completions(src, keyword, set); err != nil {
			return err
		}
	}
	for _, path := range files.Variables {
		src, err := s.open(path)
		if err != nil {
			return err
		}
		if err := s.builder.VariableCompletions(src, keyword, set); err != nil {
			return err
		}
	}
	return nil
}

// Hover returns the first match, checking variable files before scripts
func (s *Searcher) Hover(name, exclude string) (*types.Hover, error) {
	files, err := s.walker.Walk(exclude)
	if err != nil {
		return nil, err
	}
	for _, path := range files.Variables {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		if h, err := s.builder.VariableHover(src, name); err != nil || h != nil {
			return h, err
		}
	}
	for _, path := range files.Scripts {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		if h, err := s.builder.Hover(src, name); err != nil || h != nil {
			return h, err
		}
	}
	return nil, nil
}

// Signature returns the first documented def named name across scripts
func (s *Searcher) Signature(name, exclude string) (*types.Signature, error) {
	files, err := s.walker.Walk(exclude)
	if err != nil {
		return nil, err
	}
	for _, path := range files.Scripts {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		if sig, err := s.builder.Signature(src, name); err != nil || sig != nil {
			return sig, err
		}
	}
	return nil, nil
}

// Definitions returns every location of name, variable files first
func (s *Searcher) Definitions(name, exclude string) ([]types.Location, error) {
	files, err := s.walker.Walk(exclude)
	if err != nil {
		return nil, err
	}

	var locs []types.Location
	for _, path := range files.Variables {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		found, err := s.builder.VariableDefinitions(src, name)
		if err != nil {
			return nil, err
		}
		locs = append(locs, found...)
	}
	for _, path := range files.Scripts {
		src, err := s.open(path)
		if err != nil {
			return nil, err
		}
		found, err := s.builder.Definitions(src, name)
		if err != nil {
			return nil, err
		}
		locs = append(locs, found...)
	}
	return locs, nil
}
