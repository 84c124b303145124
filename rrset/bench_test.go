package rrset_test

import (
	"testing"

	"github.com/takhmin/iminfl/cascade"
	"github.com/takhmin/iminfl/rrset"
	"github.com/takhmin/iminfl/simgraph"
)

// benchGraph builds a ring with a few chords, probability 0.2.
func benchGraph(n int) *simgraph.Digraph {
	var b simgraph.Builder
	for i := 0; i < n; i++ {
		_ = b.AddEdge(i, (i+1)%n, 0.2)
		_ = b.AddEdge(i, (i+7)%n, 0.2)
	}
	return b.Build()
}

func BenchmarkAddSimulations(b *testing.B) {
	g := benchGraph(2000)
	cas := cascade.NewReverseIC(g)
	rng := cascade.NewRand(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var st rrset.Store
		rrset.AddSimulations(1000, cas, g, &st, rng)
	}
}

func BenchmarkRebuildIndex(b *testing.B) {
	g := benchGraph(2000)
	var st rrset.Store
	rrset.AddSimulations(20000, cascade.NewReverseIC(g), g, &st, cascade.NewRand(1))
	ix := rrset.NewIndex(g.NumNodes())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Rebuild(&st)
	}
}

func BenchmarkRunGreedy(b *testing.B) {
	g := benchGraph(2000)
	var st rrset.Store
	rrset.AddSimulations(20000, cascade.NewReverseIC(g), g, &st, cascade.NewRand(1))
	ix := rrset.NewIndex(g.NumNodes())
	ix.Rebuild(&st)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rrset.RunGreedy(50, rrset.NewCoverage(ix))
	}
}
