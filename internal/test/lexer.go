package test

import (
	"math/rand"
	"strings"
)

const validTokens = "var;print;(;);=;==;!=;<;<=;>;>=;!;-;+;*;/;true;false;nil;answer;x_1;123;3.14;\"this is a string\";\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";\"\";//comment\n;\n"

const validStatements = "var a = 1;|var b = \"text\";|print a + 2 * (3 - 1);|a = a / 4;|print !true == false;|var c;|print c;|print \"x\" + \"y\";|b = a = 7;|print -a >= 0.5;"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns size well formed statements, one per line.
func GetRandomProgram(size int) string {
	valid := strings.Split(validStatements, "|")

	var stmts []string
	for len(stmts) < size {
		stmts = append(stmts, valid[rand.Intn(len(valid))])
	}

	return strings.Join(stmts, "\n")
}
