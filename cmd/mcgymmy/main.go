// cmd/mcgymmy/main.go

// McGymmy 為食物與營養素紀錄工具。
// serve 提供 HTTP API；shell 提供互動式指令列。兩者共用同一份設定與資料檔，
// 啟動時載入 JSON / Badger 快照，結束時保存。

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
