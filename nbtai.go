// Package nbtai provides an AI-powered Jupyter notebook translation engine.
//
// Nbtai translates the natural-language content of .ipynb documents
// (markdown prose, code comments, formatted print strings) using AI and
// machine-translation providers, while preserving every non-natural-language
// span byte for byte: fenced and indented code, inline and display math,
// equation environments, markdown links, raw HTML tags, bare URLs and LaTeX
// commands.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/nbtai"
//	    "github.com/ZaguanLabs/nbtai/cache"
//	    "github.com/ZaguanLabs/nbtai/notebook"
//	    "github.com/ZaguanLabs/nbtai/provider"
//	)
//
//	func main() {
//	    // Create provider
//	    p, err := provider.New("google", provider.Config{
//	        SourceLang: "en",
//	        TargetLang: "pt",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Create translator
//	    t := nbtai.NewTranslator("pt", p,
//	        nbtai.WithSourceLang("en"),
//	        nbtai.WithCache(cache.NewInMemoryCache(3600)),
//	    )
//
//	    // Load, translate, save
//	    nb, err := notebook.ParseFile("lesson.ipynb")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if _, err := t.TranslateNotebook(context.Background(), nb); err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := notebook.WriteFile("lesson_pt.ipynb", nb); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package nbtai
