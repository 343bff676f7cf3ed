package engine

import "testing"

func BenchmarkSubmit(b *testing.B) {
	e := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if i%MaxOrders == 0 {
			e.Reset()
		}
		e.Submit(uint64(i), Side(i%2), uint32(100+i%32), 10)
	}
}

func BenchmarkSubmitMatchCycle(b *testing.B) {
	e := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Submit(uint64(i*2), Buy, uint32(100+i%5), 10)
		e.Submit(uint64(i*2+1), Sell, uint32(98+i%5), 10)
		e.Match()
	}
}
