package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loomlang/descriptor-loader/metadata"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>...",
		Short: "Resolve containers and print the reconstructed descriptors",
		Long: "Dump loads every given container onto one classpath, resolves each " +
			"through the deserialization stack and prints the resulting " +
			"descriptors. References between the given containers resolve to " +
			"each other; references to anything else degrade to error types.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := loadClasspath(args)
			if err != nil {
				return err
			}
			s := newSession(cp)

			for i, id := range cp.order {
				if i > 0 {
					fmt.Println()
				}
				dumpOne(s, cp.handles[id])
			}
			return nil
		},
	}
}

func dumpOne(s *session, fc *metadata.FileClass) {
	h := fc.ClassHeader()
	if !h.Kind.HasPayload() {
		fmt.Printf("%s: kind %s carries no dumpable payload\n", fc.ID(), h.Kind)
		return
	}
	switch h.Kind {
	case metadata.KindClass:
		class, ok := s.resolver.ResolveClass(fc)
		if !ok {
			fmt.Printf("%s: unresolved\n", fc.ID())
			return
		}
		fmt.Print(formatClass(class))

	case metadata.KindPackageFacade:
		fragment := s.fragment(fc.ID().Package)
		scope, ok := s.resolver.CreatePackageScope(fragment, fc)
		if !ok {
			fmt.Printf("%s: unresolved\n", fc.ID())
			return
		}
		fmt.Printf("package %s\n", fc.ID().Package)
		for _, name := range scope.AllNames() {
			for _, member := range scope.Members(name) {
				fmt.Printf("  %s\n", memberSignature(member))
			}
		}
	}
}
