package cfgm_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwmacct/261019-go-proginfo/pkg/cfgm"
)

// Example_load 演示配置文件不存在时使用默认值。
func Example_load() {
	type Config struct {
		Root   string `json:"root"`
		Strict bool   `json:"strict"`
	}

	cfg, err := cfgm.Load(Config{Root: ".."},
		cfgm.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Root:", cfg.Root)
	fmt.Println("Strict:", cfg.Strict)

	// Output:
	// Root: ..
	// Strict: false
}

// Example_load_withJSONConfig 演示根据 .json 扩展名使用 JSON 解析器。
func Example_load_withJSONConfig() {
	type Config struct {
		Root   string `json:"root"`
		Strict bool   `json:"strict"`
	}

	dir, err := os.MkdirTemp("", "cfgm-example")
	if err != nil {
		fmt.Println("创建临时目录失败:", err)

		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte(`{"root": "../..", "strict": true}`), 0o600); err != nil {
		fmt.Println("写入失败:", err)

		return
	}

	cfg, err := cfgm.Load(Config{Root: ".."}, cfgm.WithConfigFile(path))
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Root:", cfg.Root)
	fmt.Println("Strict:", cfg.Strict)

	// Output:
	// Root: ../..
	// Strict: true
}
