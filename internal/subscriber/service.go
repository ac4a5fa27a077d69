// Package subscriber はウェイトリスト登録のドメインロジックを提供する。
package subscriber

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/grown/internal/metrics"
	"github.com/hitoshi/grown/internal/model"
	"github.com/hitoshi/grown/internal/repository"
)

// Service はウェイトリスト登録のサービス層。
// 登録リクエストの正規化・バリデーションと、登録者一覧の取得を提供する。
type Service struct {
	repo     repository.SubscriberRepository
	recorder metrics.Recorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderがnilの場合はメトリクスを記録しない。
func NewService(repo repository.SubscriberRepository, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NopRecorder{}
	}
	return &Service{
		repo:     repo,
		recorder: recorder,
	}
}

// Subscribe は登録リクエストを検証し、登録者をUPSERTする。
//
// バリデーションは以下の順で行い、最初に失敗したものを返す:
//  1. emailの正規化（trim + lowercase）と形式チェック
//  2. interestsが1件以上あること
//
// バリデーションエラーは*model.APIErrorとして返し、ストレージには一切アクセスしない。
// ストレージ障害はラップしたエラーとして返す。
func (s *Service) Subscribe(ctx context.Context, p Payload) (*model.Subscriber, error) {
	email := model.NormalizeEmail(p.Email)
	if !model.IsValidEmail(email) {
		s.recorder.RecordSubscribe(metrics.ResultInvalidEmail)
		return nil, model.NewInvalidEmailError()
	}

	interests := model.NormalizeInterests(p.Interests)
	if len(interests) == 0 {
		s.recorder.RecordSubscribe(metrics.ResultNoInterest)
		return nil, model.NewNoInterestError()
	}

	zip := normalizeZip(p.Zip)

	start := time.Now()
	sub, err := s.repo.Upsert(ctx, email, model.JoinInterests(interests), zip, model.SourceLanding)
	s.recorder.RecordStoreLatency("upsert", time.Since(start))
	if err != nil {
		s.recorder.RecordSubscribe(metrics.ResultStoreError)
		return nil, fmt.Errorf("failed to save subscriber: %w", err)
	}

	s.recorder.RecordSubscribe(metrics.ResultOK)
	return sub, nil
}

// ListSubscribers は全登録者を新しい順に返す。
func (s *Service) ListSubscribers(ctx context.Context) ([]*model.Subscriber, error) {
	start := time.Now()
	subs, err := s.repo.ListAll(ctx)
	s.recorder.RecordStoreLatency("list", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}

	s.recorder.RecordSubscribersListed(len(subs))
	return subs, nil
}

// normalizeZip は郵便番号の前後の空白を除去する。空になった場合はnilを返す。
func normalizeZip(zip *string) *string {
	if zip == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*zip)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
