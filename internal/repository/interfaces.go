// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/grown/internal/model"
)

// SubscriberRepository はウェイトリスト登録者の永続化インターフェース。
type SubscriberRepository interface {
	// Upsert はemailをキーに登録者を作成または更新する。
	// 既存の場合はinterests、zip、created_atのみを上書きし、idとsourceは維持する。
	// 一意制約によるINSERT ... ON CONFLICTで1文として実行する。
	Upsert(ctx context.Context, email, interests string, zip *string, source string) (*model.Subscriber, error)

	// ListAll は全登録者をcreated_atの降順で返す。
	ListAll(ctx context.Context) ([]*model.Subscriber, error)
}
