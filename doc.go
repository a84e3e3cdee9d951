package cfnschema

// Package cfnschema converts resources described in an in-memory model (the
// model package) into CloudFormation-style resource schema documents.
//
// - model: shapes, traits, and the read-only queries the engine needs.
// - traits: the resource property derivation engine (mutability, identifiers,
//   exclusions).
// - synth: builds the synthetic structure handed to a shape-to-schema
//   converter.
// - jsonschema: the converter's output type plus a minimal default converter.
// - resourceschema: the resource schema document builder and its
//   stable-order serialization.
// - mapper: the pipeline of decoration stages that populate a resource
//   schema document from the derivation and conversion results.
//
// Design policy:
// - Keep only orchestration (Config, Converter, Error) in the root package;
//   put each component in its own package.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  conv := cfnschema.NewConverter(cfg)
//  docs, err := conv.Convert(mdl)
//
