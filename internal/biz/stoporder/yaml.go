package stoporder

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlTable 停轮表的声明式写法
//
//	layout: {reels: 5, layers: 1}
//	groups:
//	  - [{reel: 0}, {reel: 4}]
//	  - [{reel: 1}, {reel: 3}]
type yamlTable struct {
	Layout Layout         `yaml:"layout"`
	Groups [][]Descriptor `yaml:"groups"`
}

// FromYAML 解析 YAML 并按 New 的规则校验
func FromYAML(raw []byte) (*Table, error) {
	var y yamlTable
	if err := yaml.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("parse stop order yaml: %w", err)
	}
	groups := make([]Group, len(y.Groups))
	for i, g := range y.Groups {
		groups[i] = Group(g)
	}
	return New(y.Layout, groups...)
}
