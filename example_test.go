package thread_test

import (
	"fmt"
	"sync/atomic"

	thread "github.com/jolestar/go-guarded-thread"
)

func Example() {
	var done atomic.Bool
	func() {
		t, err := thread.New(func() {
			done.Store(true)
		})
		if err != nil {
			panic(err)
		}
		defer t.Close()
	}()
	fmt.Println(done.Load())

	// Output: true
}

func ExampleGuard() {
	var counter int32
	err := thread.Guard(func() {
		atomic.AddInt32(&counter, 1)
	}, func(t *thread.Thread) error {
		fmt.Println("joinable:", t.Joinable())
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("counter:", atomic.LoadInt32(&counter))

	// Output:
	// joinable: true
	// counter: 1
}

func ExampleThread_Move() {
	first, err := thread.New(func() {})
	if err != nil {
		panic(err)
	}
	second := first.Move()
	fmt.Println(first.Joinable(), second.Joinable())
	_ = first.Close()
	_ = second.Close()
	fmt.Println(second.Joinable())

	// Output:
	// false true
	// false
}

type server struct {
	loop thread.Thread
}

func ExampleThread_Start() {
	s := &server{}
	if err := s.loop.Start(func() {
		fmt.Println("serving")
	}, thread.WithName("loop")); err != nil {
		panic(err)
	}
	fmt.Println(s.loop.Name())
	_ = s.loop.Close()

	// Unordered output:
	// serving
	// loop
}
