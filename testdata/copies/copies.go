// Package copies holds code that copies a Thread. It is checked by the
// copylocks analyzer in copy_test.go and is never built.
package copies

import thread "github.com/jolestar/go-guarded-thread"

func keep(*thread.Thread) {}

func assign() {
	var a thread.Thread
	b := a // want `assignment copies lock value to b: .*Thread contains .*noCopy`
	keep(&b)
}

func declare() {
	var a thread.Thread
	var b = a // want `variable declaration copies lock value to b`
	keep(&b)
}

func byValue(t thread.Thread) { // want `byValue passes lock by value`
	keep(&t)
}

func call() {
	var a thread.Thread
	byValue(a) // want `call of byValue copies lock value`
}

func deref(t *thread.Thread) thread.Thread {
	return *t // want `return copies lock value`
}

type owner struct {
	worker thread.Thread
}

func ownerCopy(o *owner) {
	c := *o // want `assignment copies lock value to c: .*owner contains .*Thread contains .*noCopy`
	keep(&c.worker)
}
