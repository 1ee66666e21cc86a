package tracing

import (
	"fmt"

	"github.com/jonwraymond/peekaboo/class"
)

// onDefine is the definition hook installed on every traceable class. It
// wraps a newly (re)defined method whose name is registered in its scope.
// The wrapper's own definition event finds the wrapper live and stops here.
func (tt *tracedType) onDefine(m class.Method) {
	sig := signature{m.Scope, m.Name}

	tt.mu.Lock()
	if !tt.registeredLocked(sig) {
		tt.mu.Unlock()
		return
	}
	notify, err := tt.wrapLocked(sig)
	tt.mu.Unlock()

	if err != nil {
		Config().Sink().Warn(fmt.Sprintf("tracing: could not trace %s#%s: %v", tt.class.Name(), m.Name, err))
	}
	if notify != nil {
		notify()
	}
}
