// 指示: miu200521358
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ironopen/maya-rig-tools/pkg/adapter/scene/memory"
	"github.com/ironopen/maya-rig-tools/pkg/domain/model"
	"github.com/ironopen/maya-rig-tools/pkg/domain/rmath"
	"github.com/ironopen/maya-rig-tools/pkg/usecase/rinteractor"
)

// options はCLI引数を保持する。
type options struct {
	inputPath  string
	moduleType string
	chain      string
	side       string
	multiplier float64
	autoMirror bool
	stretch    bool
}

// sceneFile はドライラン入力JSONを表す。
type sceneFile struct {
	Joints []sceneJoint `json:"joints"`
}

// sceneJoint はドライラン入力のジョイント1個を表す。
type sceneJoint struct {
	Name     string     `json:"name"`
	Position [3]float64 `json:"position"`
	Parent   string     `json:"parent"`
}

// main はジョイント定義JSONからリグモジュール構築のドライランを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	scene, joints, err := loadScene(opts.inputPath)
	if err != nil {
		return err
	}
	chain, err := resolveChain(opts.chain, joints)
	if err != nil {
		return err
	}

	config := rinteractor.DefaultBuildConfig()
	config.GlobalMultiplier = opts.multiplier
	config.SideMode = model.SideMode(opts.side)
	config.AutoMirror = opts.autoMirror
	config.StretchEnabled = opts.stretch

	uc := rinteractor.NewRigBuildUsecase(rinteractor.RigBuildUsecaseDeps{Scene: scene})
	report, err := uc.Build(rinteractor.BuildRequest{
		Chain:      chain,
		ModuleType: model.ModuleType(opts.moduleType),
		Config:     config,
	})
	if err != nil {
		return fmt.Errorf("モジュール構築に失敗しました: %w", err)
	}

	for _, line := range report.StatusLines {
		fmt.Fprintf(out, "[rigbuild] %s\n", line)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "[rigbuild] 警告 %s: %s\n", warning.ID, warning.Detail)
	}
	for _, metadata := range uc.Registry().Modules() {
		fmt.Fprintf(out, "[rigbuild] 登録: %s root=%s\n", metadata.ModuleID, metadata.RootJoint)
	}
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("rigbuild", flag.ContinueOnError)
	fs.SetOutput(errOut)

	in := fs.String("in", "", "ジョイント定義JSONファイルパス")
	moduleType := fs.String("type", string(model.MODULE_TYPE_FKIK), "モジュール種別 (FK|IK|FKIK|SPINE)")
	chain := fs.String("chain", "", "チェーンのジョイント名カンマ区切り(省略時は定義順全件)")
	side := fs.String("side", string(model.SIDE_MODE_AUTO), "左右区分 (AUTO|L|R|C)")
	multiplier := fs.Float64("multiplier", 1.0, "コントロールサイズ倍率")
	autoMirror := fs.Bool("mirror", false, "反対側モジュールの自動構築")
	stretch := fs.Bool("stretch", false, "IK系モジュールのストレッチ構築")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return options{}, fmt.Errorf("ジョイント定義JSONを指定してください (-in)")
	}
	if _, exists := model.ModuleType(*moduleType).Behavior(); !exists {
		return options{}, fmt.Errorf("未知のモジュール種別です: %s", *moduleType)
	}

	return options{
		inputPath:  *in,
		moduleType: *moduleType,
		chain:      *chain,
		side:       *side,
		multiplier: *multiplier,
		autoMirror: *autoMirror,
		stretch:    *stretch,
	}, nil
}

// loadScene はジョイント定義JSONからインメモリシーンを組み立てる。
func loadScene(path string) (*memory.SceneService, []string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ジョイント定義の読み込みに失敗しました: %w", err)
	}
	var file sceneFile
	if err := json.Unmarshal(blob, &file); err != nil {
		return nil, nil, fmt.Errorf("ジョイント定義の解析に失敗しました: %w", err)
	}
	if len(file.Joints) == 0 {
		return nil, nil, fmt.Errorf("ジョイント定義が空です: %s", path)
	}

	scene := memory.NewSceneService()
	names := make([]string, 0, len(file.Joints))
	for _, joint := range file.Joints {
		if strings.TrimSpace(joint.Name) == "" {
			return nil, nil, fmt.Errorf("名前のないジョイント定義があります")
		}
		if joint.Parent != "" && !scene.NodeExists(model.NodeRef(joint.Parent)) {
			return nil, nil, fmt.Errorf("親ジョイントが先に定義されていません: %s", joint.Parent)
		}
		scene.AddJointUnder(joint.Name, model.NodeRef(joint.Parent),
			rmath.NewVec3(joint.Position[0], joint.Position[1], joint.Position[2]))
		names = append(names, joint.Name)
	}
	return scene, names, nil
}

// resolveChain はチェーン指定を解決する。省略時は定義順全件を使う。
func resolveChain(chainArg string, joints []string) (model.Chain, error) {
	names := joints
	if strings.TrimSpace(chainArg) != "" {
		names = strings.Split(chainArg, ",")
	}
	chain := make(model.Chain, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("チェーン指定に空のジョイント名があります: %s", chainArg)
		}
		chain = append(chain, model.NodeRef(trimmed))
	}
	return chain, nil
}
