package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/staticmesh/types"
)

// Parameters obtained from the YAML input file
type MeshParameters struct {
	Title           string            `yaml:"Title"`
	NoMetric        bool              `yaml:"NoMetric"`        // Build topology only
	Partitions      int               `yaml:"Partitions"`      // METIS parts, 0 or 1 for none
	Objective       string            `yaml:"Objective"`       // "cut" or "vol"
	ImbalanceFactor float64           `yaml:"ImbalanceFactor"` // e.g. 1.05 for 5% imbalance
	BCs             map[string]string `yaml:"BCs"`             // Marker name -> BC type name
	Output          string            `yaml:"Output"`          // Summary YAML file
}

func NewMeshParameters() *MeshParameters {
	return &MeshParameters{
		Objective:       "vol",
		ImbalanceFactor: 1.05,
	}
}

func (ip *MeshParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	switch ip.Objective {
	case "cut", "vol":
	default:
		return fmt.Errorf("unknown partition objective %q, use cut or vol", ip.Objective)
	}
	if ip.Partitions < 0 {
		return fmt.Errorf("number of partitions must not be negative, have %d", ip.Partitions)
	}
	if ip.ImbalanceFactor < 1 {
		return fmt.Errorf("imbalance factor must be at least 1, have %g", ip.ImbalanceFactor)
	}
	return
}

// BCTypes resolves the BCs section into boundary condition types by marker
func (ip *MeshParameters) BCTypes() (bcs map[types.BCTAG]types.BCType, err error) {
	bcs = make(map[types.BCTAG]types.BCType, len(ip.BCs))
	for marker, name := range ip.BCs {
		bc, ok := types.BCNameMap[string(types.NewBCTAG(name))]
		if !ok {
			return nil, fmt.Errorf("unknown boundary condition %q for marker %q", name, marker)
		}
		bcs[types.NewBCTAG(marker)] = bc
	}
	return
}

func (ip *MeshParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%v\t\t\t= NoMetric\n", ip.NoMetric)
	fmt.Printf("[%d]\t\t\t= Partitions\n", ip.Partitions)
	fmt.Printf("[%s]\t\t\t= Objective\n", ip.Objective)
	fmt.Printf("%8.5f\t\t= ImbalanceFactor\n", ip.ImbalanceFactor)
	keys := make([]string, len(ip.BCs))
	i := 0
	for k := range ip.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
