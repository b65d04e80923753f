// starman は占星術バックエンドAPIのエントリーポイント。
//
// サブコマンド:
//
//	serve       APIサーバーを起動する（デフォルト）
//	worker      デイリーコンテンツ事前生成ワーカーを起動する
//	migrate     データベースマイグレーションを実行する
//	healthcheck /health エンドポイントの疎通確認を行う
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hitoshi/starman/internal/app"
)

func main() {
	// .env ファイルはローカル開発用。存在しなくてもエラーにしない。
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
