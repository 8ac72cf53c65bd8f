// Package pipeline moves frames from a source to the transforms across a
// bounded channel.
//
// A producer calls Submit, which never blocks: when the input queue is full the
// configured DropPolicy decides whether the oldest queued frame or the incoming
// one is discarded. A single worker goroutine applies the current mode to each
// frame and publishes a Result on Results(), again without blocking. Transform
// failures are logged and counted; they never stop the worker.
//
// Example usage:
//
//	p, err := pipeline.New(pipeline.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := p.Start(ctx); err != nil {
//	    return err
//	}
//	defer p.Stop()
//
//	go func() {
//	    for result := range p.Results() {
//	        fmt.Println(result.Seq, result.Mode)
//	    }
//	}()
//	p.Submit(f)
package pipeline
