package board

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Parameter 一个文件引用：文件名模式与可选的路径子串过滤。
type Parameter struct {
	Name   string `yaml:"-"`
	File   string `yaml:"file"`
	Filter string `yaml:"filter"`
}

// ParameterSet 按声明顺序保存一个板的参数。
type ParameterSet struct {
	params []Parameter
}

// Params 返回参数副本，顺序与配置文件一致。
func (s ParameterSet) Params() []Parameter {
	return append([]Parameter(nil), s.params...)
}

// Len 返回参数个数。
func (s ParameterSet) Len() int {
	return len(s.params)
}

// Get 按名称查找参数。
func (s ParameterSet) Get(name string) (Parameter, bool) {
	for _, p := range s.params {
		if p.Name == name {
			return p, true
		}
	}

	return Parameter{}, false
}

// TemplateFile 返回保留的 templateFile 参数。
func (s ParameterSet) TemplateFile() (Parameter, bool) {
	return s.Get(TemplateKey)
}

// UnmarshalYAML 保留映射键的声明顺序。
//
// 值可以是标量 (文件名模式)，也可以是 {file, filter} 映射。
// 支持 "<<" 合并键，显式声明的键优先于合并进来的键。
func (s *ParameterSet) UnmarshalYAML(node *yaml.Node) error {
	pairs, err := mappingPairs(node, map[*yaml.Node]bool{})
	if err != nil {
		return err
	}

	params := make([]Parameter, 0, len(pairs))
	for _, kv := range pairs {
		key, val := kv[0], kv[1]

		p := Parameter{Name: key.Value}
		switch val.Kind {
		case yaml.ScalarNode:
			if val.ShortTag() != nullTag {
				p.File = val.Value
			}
		case yaml.MappingNode:
			if err := val.Decode(&p); err != nil {
				return fmt.Errorf("line %d: parameter %q: %w", val.Line, key.Value, err)
			}
		default:
			return fmt.Errorf("line %d: parameter %q must be a file name or a {file, filter} mapping", val.Line, key.Value)
		}
		if p.File == "" {
			return fmt.Errorf("line %d: parameter %q has an empty file name", val.Line, key.Value)
		}

		params = append(params, p)
	}
	s.params = params

	return nil
}

const (
	nullTag  = "!!null"
	mergeTag = "!!merge"
)

// mappingPairs 返回映射的键值对 (别名已解析)，"<<" 合并的键出现在合并键所在位置。
//
// 合并来源为序列时，靠前的映射优先。visiting 用于拒绝自引用的锚点。
func mappingPairs(node *yaml.Node, visiting map[*yaml.Node]bool) ([][2]*yaml.Node, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: board parameters must be a mapping", node.Line)
	}
	if visiting[node] {
		return nil, fmt.Errorf("line %d: merge key refers to itself", node.Line)
	}
	visiting[node] = true
	defer delete(visiting, node)

	explicit := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.ShortTag() == mergeTag {
			continue
		}
		if _, dup := explicit[key.Value]; dup {
			return nil, fmt.Errorf("line %d: parameter %q defined more than once", key.Line, key.Value)
		}
		explicit[key.Value] = struct{}{}
	}

	pairs := make([][2]*yaml.Node, 0, len(node.Content)/2)
	merged := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])
		if key.ShortTag() != mergeTag {
			pairs = append(pairs, [2]*yaml.Node{key, val})

			continue
		}

		sources := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			sources = val.Content
		}
		for _, src := range sources {
			if resolveAlias(src).Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", key.Line)
			}
			inherited, err := mappingPairs(src, visiting)
			if err != nil {
				return nil, err
			}
			for _, kv := range inherited {
				name := kv[0].Value
				if _, ok := explicit[name]; ok {
					continue
				}
				if _, ok := merged[name]; ok {
					continue
				}
				merged[name] = struct{}{}
				pairs = append(pairs, kv)
			}
		}
	}

	return pairs, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}
