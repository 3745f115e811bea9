/*
Package regkit provides thread-safe, namespaced registration for
plugin-style architectures.

# Overview

regkit is a Go library for systems where many independent components
declare named values into a shared namespace during startup, after which
the namespace closes and serves reads for the life of the process. It was
built for content registration (items, blocks, handlers) but works for any
plugin/extension shape.

The core pieces:
  - Key: an immutable "namespace:name" identifier with strict validation
  - Registry: a concurrent bijective Key↔value store with an open→finalized
    lifecycle
  - Register: a namespace-scoped batch of deferred (name, factory)
    declarations, submitted as a unit
  - Ref: a write-once forward reference to a value that will exist after
    submission

# Basic Usage

Declare factories up front, submit when registration opens, read refs after:

	type Item struct {
	    Damage int
	}

	func main() {
	    registry := regkit.NewRegistry[*Item](regkit.MustKey("core", "items"))

	    mods, _ := regkit.NewRegister[*Item]("mods")
	    sword, _ := mods.Declare("sword", func() *Item { return &Item{Damage: 7} })
	    shield, _ := mods.Declare("shield", func() *Item { return &Item{Damage: 0} })

	    if err := mods.Submit(registry); err != nil {
	        log.Fatal(err)
	    }
	    if err := registry.Finalize(); err != nil {
	        log.Fatal(err)
	    }

	    fmt.Println(sword.MustGet().Damage)  // 7
	    fmt.Println(shield.Resolved())       // true
	}

Factories run at submission time, in declaration order, never at
declaration time. Each Declare returns a Ref that resolves during Submit.

# Lifecycle

A registry starts open. While open, Register calls from any goroutine are
accepted (subject to uniqueness) and reads take a shared lock. Finalize
flips the registry to its terminal state: further writes fail with
ErrRegistryFinalized, and reads no longer take any lock. Finalizing twice
fails with ErrAlreadyFinalized.

Uniqueness runs in both directions: a key can hold one value and a value
can appear under one key. Violations fail with ErrDuplicateKey or
ErrDuplicateValue and leave the registry untouched.

# Notifications

The owner of a registry announces the registration phase over the event
bus; listeners submit their registers when the notification arrives:

	bus := event.NewBus(event.DefaultBusConfig)
	bus.Subscribe([]string{regkit.RegistrationEventType}, event.HandlerFunc(
	    func(ctx context.Context, e event.Event) error {
	        evt, ok := e.(*regkit.RegistrationEvent[*Item])
	        if !ok {
	            return nil
	        }
	        return mods.SubmitEvent(evt)
	    }))

	bus.Publish(ctx, regkit.NewRegistrationEvent(registry))

The notification exposes only the target registry, nothing else.

# Error Handling

Every failure is synchronous and fail-fast; registration errors are setup
bugs, not runtime conditions. Sentinels cover lifecycle and conflict cases
and survive wrapping:

	if err := mods.Submit(registry); err != nil {
	    var regErr *regkit.RegistrationError
	    if errors.As(err, &regErr) {
	        log.Printf("key %s: %v", regErr.Key, regErr.Err)
	    }
	    if errors.Is(err, regkit.ErrDuplicateKey) {
	        // another plugin claimed the name first
	    }
	}

Malformed namespaces and names fail with *KeyError at construction; ParseKey
never errors and simply reports no key for malformed input.

# Observability

Logging, metrics, tracing, and an audit journal are opt-in per registry:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	j, _ := journal.NewSQLiteJournal("./registry.db")
	defer j.Close()

	registry := regkit.NewRegistry[*Item](key,
	    regkit.WithLogger(logger),
	    regkit.WithMetrics(observability.NewMetricsRecorder()),
	    regkit.WithSpans(observability.NewSpanManager()),
	    regkit.WithJournal(j))

OpenTelemetry metrics: regkit.registry.registrations, regkit.registry.conflicts,
regkit.register.submit_latency_ms, etc. Spans cover batch submissions.
The journal records operation metadata (keys, outcomes, timestamps), never
the registered values.

# Thread Safety

  - Key is an immutable value type, safe everywhere
  - Registry is safe for concurrent use at every lifecycle stage
  - Register serializes its own mutations; Submit runs on the caller
  - Ref resolves exactly once and reads lock-free afterwards

# Subpackages

  - event: notification bus delivering registration events
  - journal: audit trail of registry operations (memory, SQLite)
  - config: typed configuration extraction for Settings
  - observability: logging, metrics, and tracing helpers
*/
package regkit
