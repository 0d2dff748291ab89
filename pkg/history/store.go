package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-image-studio/pkg/domain"
)

// Store は、プロセスの生存期間だけ保持されるインメモリの生成履歴です。
// 新しいアイテムが先頭に来る順序を維持し、アイテムは追加後に変更されません。
// 結果バイト列はアイテム自身が持つため、履歴に残っている限り参照可能です。
type Store struct {
	mu    sync.RWMutex
	items []domain.HistoryItem
}

// NewStore は空の履歴ストアを生成します。
func NewStore() *Store {
	return &Store{}
}

// Record は生成成功を履歴に記録して、ID と作成時刻を付与したアイテムを返すのだ。
func (s *Store) Record(tool domain.Tool, prompt string, result domain.ImageData, savedPath string) domain.HistoryItem {
	item := domain.HistoryItem{
		ID:        uuid.NewString(),
		Kind:      tool.Kind(),
		Tool:      tool,
		Prompt:    prompt,
		Result:    result,
		SavedPath: savedPath,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 新しいものを先頭に置くのだ
	s.items = append([]domain.HistoryItem{item}, s.items...)
	return item
}

// List は新しい順の履歴の防御的コピーを返すのだ。
func (s *Store) List() []domain.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]domain.HistoryItem, len(s.items))
	copy(copied, s.items)
	return copied
}

// Len は記録済みアイテム数を返します。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Find は ID でアイテムを検索します。
func (s *Store) Find(id string) (domain.HistoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.HistoryItem{}, false
}

// ResolveImage は履歴アイテムを画像ツールの入力として取り出すのだ。
// 動画アイテムを画像専用ツールに流用しようとした場合はエラーで拒否するのだよ。
func (s *Store) ResolveImage(id string) (domain.ImageData, error) {
	item, ok := s.Find(id)
	if !ok {
		return domain.ImageData{}, &domain.ValidationError{Reason: "指定されたIDの履歴が見つかりません: " + id}
	}
	if item.Kind == domain.KindVideo {
		return domain.ImageData{}, &domain.ValidationError{Reason: "動画の履歴アイテムは画像ツールの入力には使えません: " + id}
	}
	return item.Result, nil
}
