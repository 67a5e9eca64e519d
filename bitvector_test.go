package rank9sel

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSuccinctBitVectorScenarios(t *testing.T) {
	Convey("Given v = [MAX_U64, 0]", t, func() {
		sv := Prepare([]uint64{^uint64(0), 0})

		Convey("Then Size, Index and Rank report the all-ones-then-all-zeros layout correctly", func() {
			So(sv.Size(), ShouldEqual, uint64(128))

			bit, err := sv.Index(63)
			So(err, ShouldBeNil)
			So(bit, ShouldBeTrue)

			bit, err = sv.Index(64)
			So(err, ShouldBeNil)
			So(bit, ShouldBeFalse)

			r, err := sv.Rank(27)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(27))

			r, err = sv.Rank(64)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(64))

			r, err = sv.Rank(128)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(64))
		})
	})

	Convey("Given v = [0, MAX_U64]", t, func() {
		sv := Prepare([]uint64{0, ^uint64(0)})

		Convey("Then Index and Rank report the all-zeros-then-all-ones layout correctly", func() {
			r, err := sv.Rank(66)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(2))

			r, err = sv.Rank(128)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(64))

			bit, err := sv.Index(64)
			So(err, ShouldBeNil)
			So(bit, ShouldBeTrue)

			bit, err = sv.Index(63)
			So(err, ShouldBeNil)
			So(bit, ShouldBeFalse)
		})
	})

	Convey("Given any vector", t, func() {
		sv := Prepare([]uint64{0xF0F0F0F0F0F0F0F0, 0x0F0F0F0F0F0F0F0F})

		Convey("Then boundary rank queries at 0, Size(), and Size()+1 behave correctly", func() {
			r, err := sv.Rank(0)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(0))

			r, err = sv.Rank(sv.Size())
			So(err, ShouldBeNil)
			So(r, ShouldEqual, sv.NumOnes())

			_, err = sv.Rank(sv.Size() + 1)
			So(err, ShouldEqual, ErrOutOfRange)
		})
	})

	Convey("Given the empty vector", t, func() {
		sv := Prepare(nil)

		Convey("Then Rank(0) succeeds and every other query is out of range", func() {
			So(sv.Size(), ShouldEqual, uint64(0))

			r, err := sv.Rank(0)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(0))

			_, err = sv.Rank(1)
			So(err, ShouldEqual, ErrOutOfRange)

			_, err = sv.Index(0)
			So(err, ShouldEqual, ErrOutOfRange)
		})
	})

	Convey("Given a single set bit at position 191", t, func() {
		sv := Prepare([]uint64{0, 0, 1 << 63, 0})

		Convey("Then Rank and Index correctly bracket the single set bit", func() {
			r, err := sv.Rank(191)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(0))

			r, err = sv.Rank(192)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(1))

			bit, err := sv.Index(191)
			So(err, ShouldBeNil)
			So(bit, ShouldBeTrue)

			bit, err = sv.Index(190)
			So(err, ShouldBeNil)
			So(bit, ShouldBeFalse)
		})
	})
}

func TestSelectRoundTripsWithRank(t *testing.T) {
	Convey("Given a dense pseudo-random vector spanning many basic blocks", t, func() {
		r := rand.New(rand.NewSource(42))
		words := make([]uint64, 4000)
		for i := range words {
			words[i] = r.Uint64()
		}
		sv := Prepare(words)

		Convey("Then Select(n) followed by Rank lands on the n-th one and Index confirms it is set", func() {
			for n := uint64(0); n < sv.NumOnes(); n += 97 {
				pos, err := sv.Select(n)
				So(err, ShouldBeNil)

				bit, err := sv.Index(pos)
				So(err, ShouldBeNil)
				So(bit, ShouldBeTrue)

				rk, err := sv.Rank(pos)
				So(err, ShouldBeNil)
				So(rk, ShouldEqual, n)
			}
		})

		Convey("Then Select(NumOnes()) is out of range", func() {
			_, err := sv.Select(sv.NumOnes())
			So(err, ShouldEqual, ErrOutOfRange)
		})
	})

	Convey("Given a sparse vector with widely separated set bits", t, func() {
		words := make([]uint64, 200)
		positions := []uint64{0, 63, 64, 4095, 4096, 8000, 12799}
		for _, p := range positions {
			words[p/64] |= 1 << (p % 64)
		}
		sv := Prepare(words)

		Convey("Then Select recovers each position in order", func() {
			for n, want := range positions {
				got, err := sv.Select(uint64(n))
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			}
		})
	})
}

func TestSelectExplicitWideSpanTiers(t *testing.T) {
	Convey("Given a bracket of 512 dense ones followed by a lone one 200 blocks away", t, func() {
		const outPos = 200 * blockBits
		words := make([]uint64, outPos/wordBits+1)
		for i := 0; i < 8; i++ {
			words[i] = ^uint64(0) // positions 0..511, the first sampled bracket
		}
		words[outPos/wordBits] |= 1 << (outPos % wordBits)
		sv := Prepare(words)

		Convey("Then the bracket's secondary record uses the 32-bit explicit tier and Select still agrees with Rank and Index", func() {
			for _, n := range []uint64{0, 1, 255, 500, 511} {
				pos, err := sv.Select(n)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, n)

				bit, err := sv.Index(pos)
				So(err, ShouldBeNil)
				So(bit, ShouldBeTrue)

				rk, err := sv.Rank(pos)
				So(err, ShouldBeNil)
				So(rk, ShouldEqual, n)
			}

			pos, err := sv.Select(512)
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, uint64(outPos))
		})
	})

	Convey("Given a bracket of 512 dense ones followed by a lone one 300 blocks away", t, func() {
		const outPos = 300 * blockBits
		words := make([]uint64, outPos/wordBits+1)
		for i := 0; i < 8; i++ {
			words[i] = ^uint64(0)
		}
		words[outPos/wordBits] |= 1 << (outPos % wordBits)
		sv := Prepare(words)

		Convey("Then the bracket's secondary record uses the 64-bit explicit tier and Select still agrees with Rank and Index", func() {
			for _, n := range []uint64{0, 1, 255, 500, 511} {
				pos, err := sv.Select(n)
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, n)

				bit, err := sv.Index(pos)
				So(err, ShouldBeNil)
				So(bit, ShouldBeTrue)

				rk, err := sv.Rank(pos)
				So(err, ShouldBeNil)
				So(rk, ShouldEqual, n)
			}

			pos, err := sv.Select(512)
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, uint64(outPos))
		})
	})
}

func TestPrepareConcurrentMatchesPrepare(t *testing.T) {
	Convey("Given a large pseudo-random vector spanning many strides", t, func() {
		r := rand.New(rand.NewSource(7))
		words := make([]uint64, 8*4096*3+17)
		for i := range words {
			words[i] = r.Uint64()
		}

		serial := Prepare(words)
		concurrent := PrepareConcurrent(append([]uint64(nil), words...), WithConcurrency(4))

		Convey("Then both report the same size and popcount", func() {
			So(concurrent.Size(), ShouldEqual, serial.Size())
			So(concurrent.NumOnes(), ShouldEqual, serial.NumOnes())
		})

		Convey("Then both answer rank and select identically at sampled positions", func() {
			for p := uint64(0); p <= serial.Size(); p += 4001 {
				a, errA := serial.Rank(p)
				b, errB := concurrent.Rank(p)
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldEqual, b)
			}
			for n := uint64(0); n < serial.NumOnes(); n += 4001 {
				a, errA := serial.Select(n)
				b, errB := concurrent.Select(n)
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a, ShouldEqual, b)
			}
		})
	})

	Convey("Given a small vector below the concurrency threshold", t, func() {
		words := []uint64{0xAAAAAAAAAAAAAAAA}

		Convey("Then PrepareConcurrent falls back to the serial path and still answers correctly", func() {
			sv := PrepareConcurrent(words, WithConcurrency(8))
			r, err := sv.Rank(64)
			So(err, ShouldBeNil)
			So(r, ShouldEqual, uint64(32))
		})
	})
}

func TestUncheckedIndexMatchesIndex(t *testing.T) {
	Convey("Given a vector built from random words", t, func() {
		r := rand.New(rand.NewSource(9))
		words := make([]uint64, 20)
		for i := range words {
			words[i] = r.Uint64()
		}
		sv := Prepare(words)

		Convey("Then UncheckedIndex agrees with Index for every in-range position", func() {
			for n := uint64(0); n < sv.Size(); n++ {
				want, err := sv.Index(n)
				So(err, ShouldBeNil)
				So(sv.UncheckedIndex(n), ShouldEqual, want)
			}
		})
	})
}
