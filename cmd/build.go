/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"log"

	"github.com/ghodss/yaml"
	"github.com/hodgesds/perf-utils"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/staticmesh/InputParameters"
	"github.com/notargets/staticmesh/mesh"
	"github.com/notargets/staticmesh/mesh/readers"
	"github.com/notargets/staticmesh/types"
	"github.com/notargets/staticmesh/utils"
)

type BuildModel struct {
	GridFile   string
	InputFile  string
	Output     string
	Profile    string
	NoMetric   bool
	Partitions int
	Perf       bool
	Verbose    bool
}

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Read a mesh file and build its interior and boundary data",
	Long: `Reads a mesh file, builds faces, metrics and the boundary table, prints
mesh statistics and optionally partitions the cells and writes a YAML summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bm := &BuildModel{
			GridFile:   viper.GetString("gridFile"),
			InputFile:  viper.GetString("inputParametersFile"),
			Output:     viper.GetString("output"),
			Profile:    viper.GetString("profile"),
			NoMetric:   viper.GetBool("noMetric"),
			Partitions: viper.GetInt("partitions"),
			Perf:       viper.GetBool("perf"),
			Verbose:    viper.GetBool("verbose"),
		}
		if len(bm.GridFile) == 0 {
			return fmt.Errorf("must supply a grid file (-F, --gridFile) in .su2, .neu or .msh format")
		}
		switch bm.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode %q, use cpu or mem", bm.Profile)
		}
		_, err := RunBuild(bm)
		return err
	},
}

func init() {
	rootCmd.AddCommand(BuildCmd)
	BuildCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2), Gambit (.neu) or Gmsh 2.2 (.msh) format")
	BuildCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for build parameters like:\n\t- Partitions\n\t- BCs (marker name -> BC type)")
	BuildCmd.Flags().StringP("output", "o", "", "write a YAML summary of the built mesh to this file")
	BuildCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	BuildCmd.Flags().Bool("noMetric", false, "build topology only, skip face and cell metrics")
	BuildCmd.Flags().IntP("partitions", "p", 0, "number of METIS partitions to compute")
	BuildCmd.Flags().Bool("perf", false, "count CPU instructions spent building the mesh")
	BuildCmd.Flags().BoolP("verbose", "v", false, "log progress")
	if err := viper.BindPFlags(BuildCmd.Flags()); err != nil {
		panic(err)
	}
}

func processInput(bm *BuildModel) (ip *InputParameters.MeshParameters, err error) {
	ip = InputParameters.NewMeshParameters()
	if len(bm.InputFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(bm.InputFile); err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", bm.InputFile, err)
		}
	}
	// Command line flags override the input file
	if bm.NoMetric {
		ip.NoMetric = true
	}
	if bm.Partitions > 0 {
		ip.Partitions = bm.Partitions
	}
	if len(bm.Output) != 0 {
		ip.Output = bm.Output
	}
	if bm.Verbose {
		ip.Print()
	}
	return
}

// RunBuild reads the grid, builds it and reports on it
func RunBuild(bm *BuildModel) (summary mesh.Summary, err error) {
	var (
		ip *InputParameters.MeshParameters
		m  *mesh.StaticMesh
	)
	if ip, err = processInput(bm); err != nil {
		return
	}
	if m, err = readers.ReadMeshFile(bm.GridFile, bm.Verbose); err != nil {
		return
	}

	bcs, err := ip.BCTypes()
	if err != nil {
		return
	}
	for _, g := range m.BoundaryGroups() {
		if bc, ok := bcs[types.NewBCTAG(g.Name)]; ok {
			if err = m.SetBoundaryType(g.Name, bc); err != nil {
				return
			}
		}
	}

	build := func() error {
		if err := m.BuildInterior(!ip.NoMetric); err != nil {
			return err
		}
		return m.BuildBoundary()
	}
	if bm.Perf {
		var pv *perf.ProfileValue
		if pv, err = perf.CPUInstructions(build); err != nil {
			return
		}
		log.Printf("Build used %d CPU instructions", pv.Value)
	} else if err = build(); err != nil {
		return
	}
	if utils.IsNan(m.Clvol()) || utils.IsNan(m.Fcara()) {
		err = fmt.Errorf("NaN in mesh metrics of %s", bm.GridFile)
		return
	}
	m.PrintStatistics()

	summary = m.Summary()
	if ip.Partitions > 1 {
		cfg := mesh.DefaultPartitionConfig(int32(ip.Partitions))
		cfg.Objective = ip.Objective
		cfg.ImbalanceFactor = float32(ip.ImbalanceFactor)
		cfg.Verbose = bm.Verbose
		var part []int32
		if part, err = mesh.NewPartitioner(m, cfg).Partition(); err != nil {
			return
		}
		summary.Partitions = make([]int, ip.Partitions)
		for _, p := range part {
			summary.Partitions[p]++
		}
		fmt.Printf("Partition sizes: %v\n", summary.Partitions)
	}

	if len(ip.Output) != 0 {
		var data []byte
		if data, err = yaml.Marshal(summary); err != nil {
			return
		}
		if err = ioutil.WriteFile(ip.Output, data, 0644); err != nil {
			return
		}
	}
	if bm.Verbose {
		log.Println(utils.GetMemUsage())
	}
	return
}
