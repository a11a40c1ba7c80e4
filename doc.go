// Package molload loads molecular structure files without the caller
// naming a format. Given a path or URL, it scans a registry of format
// handlers, asks each one's identification predicate in priority order,
// and dispatches to the first match's parse entry point with an argument
// bag pruned to what that entry point declares it accepts.
//
// Loading a local or remote file:
//
//	result, err := molload.Load(ctx, "4lzt.pdb.gz", nil)
//
// Formats with no embedded atom count need it supplied:
//
//	traj, err := molload.Load(ctx, "prod.mdcrd", molload.Args{
//		molload.KeyNAtom:  1654,
//		molload.KeyHasBox: true,
//	})
//
// New formats plug in without touching the dispatcher: implement
// registry.Module plus the Identifier capability and at least one parse
// entry point, declare the rest in an HCL manifest, and pass the module to
// New.
package molload
