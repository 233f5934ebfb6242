package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/fiber"
	"github.com/weft-ui/weft/pkg/host/memdom"
	"github.com/weft-ui/weft/pkg/inspect"
	"github.com/weft-ui/weft/pkg/sched"
)

// counter is the demo component: a heading that increments on click.
func counter(ctx element.Ctx, props element.Props) *element.Element {
	count, setCount := fiber.UseState(ctx, 1)
	return element.El("h1",
		element.On("click", func(element.Event) {
			setCount(func(c int) int { return c + 1 })
		}),
		element.Textf("Count: %d", count),
	)
}

func demoCmd() *cobra.Command {
	var (
		clicks      int
		inspectAddr string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the counter component into an in-memory document",
		Long: `Renders a click-counter component into an in-memory host document,
dispatches clicks, and prints the committed markup after every pass.
With --inspect, also serves the live tree and metrics over HTTP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := prometheus.NewRegistry()
			doc := memdom.New()
			container := doc.NewContainer()
			scheduler := sched.NewManualScheduler()

			r := fiber.NewRenderer(doc,
				fiber.WithScheduler(scheduler),
				fiber.WithMetrics(fiber.NewMetrics(fiber.WithRegistry(registry))),
			)
			defer r.Close()

			if inspectAddr != "" {
				srv := inspect.New(r, inspect.WithGatherer(registry))
				defer srv.Close()
				go func() {
					_ = http.ListenAndServe(inspectAddr, srv.Handler())
				}()
				info("inspector on http://%s (/tree, /metrics, /ws)", inspectAddr)
			}

			if err := r.Render(element.C(counter, nil), container); err != nil {
				return err
			}
			settle(r, scheduler)
			success("initial commit: %s", container.Markup())

			heading := container.FindTag("h1")
			if heading == nil {
				return fmt.Errorf("demo: no h1 in committed tree")
			}
			created := doc.Created

			for i := 0; i < clicks; i++ {
				heading.Dispatch("click", nil)
				settle(r, scheduler)
				info("after click %d: %s", i+1, container.Markup())
			}

			if doc.Created == created {
				success("all %d updates reused the committed host nodes", clicks)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&clicks, "clicks", 3, "number of clicks to dispatch")
	cmd.Flags().StringVar(&inspectAddr, "inspect", "", "serve the inspector on this address (e.g. localhost:8089)")
	return cmd
}

// settle runs idle slices until the renderer has nothing left to do.
func settle(r *fiber.Renderer, scheduler *sched.ManualScheduler) {
	for i := 0; i < 1024 && !r.Idle(); i++ {
		scheduler.Step(sched.Forever())
	}
}
