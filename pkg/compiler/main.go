// Package compiler translates a single-function C subset into a pseudo-x86
// assembly listing.
//
// Pipeline: C source → Lex → Parse → Analyze → GenerateTAC → Optimize → Generate
package compiler
