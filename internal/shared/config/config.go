package config

import (
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

// ResolvePath 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func ResolvePath(cfgName string) string {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			return cfgName
		}
		return filepath.Join(curDir, cfgName)
	}
	return findConfigUpward(curDir)
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + defaultConfigRelPath + " from: " + startDir)
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
